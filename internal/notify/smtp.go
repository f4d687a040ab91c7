// Package notify dispatches OTP emails. The fire-and-forget contract is a
// single Send per issuance; retries are the caller's decision (the OTP flow
// deliberately makes none).
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"emart-gateway/internal/platform/config"
)

// SMTPSender sends mail through an authenticated SMTP relay.
type SMTPSender struct {
	cfg config.SMTP
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers one message. The context is not honored by net/smtp;
// delivery is bounded by the relay's own connection handling.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	_ = ctx

	msg := buildMessage(s.cfg.From, to, subject, body)
	addr := s.cfg.Host + ":" + s.cfg.Port

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.Username, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
