// Package otp issues and verifies short-lived one-time passcodes bound to a
// username, coordinating credential validation and email dispatch.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"emart-gateway/internal/downstream/orderproc"
	otpmetrics "emart-gateway/internal/otp/metrics"
	"emart-gateway/internal/otp/store"
	dErrors "emart-gateway/pkg/domain-errors"
)

const (
	mailSubject  = "Your eMart OTP"
	mailBodyTmpl = "Your OTP is: %s. It will expire in 5 minutes."
)

// CredentialValidator checks a username/password pair and reports the
// registered contact address. Satisfied by the order-processor client.
type CredentialValidator interface {
	ValidateUser(ctx context.Context, creds orderproc.Credentials) (*orderproc.UserValidation, error)
}

// Sender dispatches a message to a contact address.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service drives the per-subject OTP state machine:
// NoCode -> Issued -> (Verified | Invalid).
type Service struct {
	store   store.Store
	users   CredentialValidator
	mail    Sender
	ttl     time.Duration
	logger  *slog.Logger
	metrics *otpmetrics.Metrics

	generate func() (string, error)
}

// Option configures optional Service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *otpmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTTL overrides the 5-minute code lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

func New(st store.Store, users CredentialValidator, mail Sender, opts ...Option) *Service {
	s := &Service{
		store:    st,
		users:    users,
		mail:     mail,
		ttl:      5 * time.Minute,
		logger:   slog.Default(),
		generate: generateCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue validates credentials, generates a fresh 6-digit code for username
// (overwriting any outstanding one) and dispatches it to the registered
// email address. No step is retried; the first failure fails the issuance.
func (s *Service) Issue(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return dErrors.New(dErrors.CodeValidation, "username and password are required")
	}

	validation, err := s.users.ValidateUser(ctx, orderproc.Credentials{UserID: username, Password: password})
	if err != nil {
		s.metrics.IncrementIssueFailures()
		return err
	}
	if !validation.Success() {
		s.metrics.IncrementIssueFailures()
		return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	if validation.Email == "" {
		s.metrics.IncrementIssueFailures()
		return dErrors.New(dErrors.CodeNotFound, "no registered email address for user")
	}

	code, err := s.generate()
	if err != nil {
		s.metrics.IncrementIssueFailures()
		return dErrors.Wrap(err, dErrors.CodeInternal, "generate passcode")
	}

	rec := store.Record{Subject: username, Code: code, IssuedAt: time.Now()}
	if err := s.store.Save(ctx, rec, s.ttl); err != nil {
		s.metrics.IncrementIssueFailures()
		return dErrors.Wrap(err, dErrors.CodeInternal, "store passcode")
	}

	if err := s.mail.Send(ctx, validation.Email, mailSubject, fmt.Sprintf(mailBodyTmpl, code)); err != nil {
		s.metrics.IncrementIssueFailures()
		return dErrors.Wrap(err, dErrors.CodeDeliveryFailed, "Failed to send OTP email")
	}

	s.metrics.IncrementIssued()
	s.logger.InfoContext(ctx, "otp issued", "user_id", username)
	return nil
}

// Verify consumes the outstanding code for username on an exact string
// match. An invalid attempt mutates nothing and is not rate limited.
func (s *Service) Verify(ctx context.Context, username, code string) error {
	if username == "" || code == "" {
		return dErrors.New(dErrors.CodeValidation, "username and otp are required")
	}

	ok, err := s.store.Consume(ctx, username, code)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "verify passcode")
	}
	if !ok {
		s.metrics.IncrementVerifyRejected()
		s.logger.InfoContext(ctx, "otp rejected", "user_id", username)
		return dErrors.New(dErrors.CodeValidation, "Invalid OTP")
	}

	s.metrics.IncrementVerified()
	s.logger.InfoContext(ctx, "otp verified", "user_id", username)
	return nil
}

// generateCode draws a uniform 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
