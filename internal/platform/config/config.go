// Package config centralizes environment-driven configuration so main stays
// lean. Defaults match the local docker-compose topology.
package config

import (
	"os"
	"strings"
	"time"
)

// SMTP holds credentials for the OTP mail sender.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Config captures everything the gateway needs at startup.
type Config struct {
	Addr string

	OrderProcessorURL string
	ComplianceURL     string
	ScenarioPath      string

	// Injected-fault tuning. The reference behavior sleeps 9s on the
	// payment path and 7s on the direct order path.
	PaymentSlowDelay time.Duration
	OrderSlowDelay   time.Duration

	DownstreamTimeout time.Duration
	OTPTTL            time.Duration

	SMTP SMTP

	// Optional backends; empty means in-process fallbacks.
	RedisURL     string
	KafkaBrokers []string
	AuditTopic   string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:              envOr("GATEWAY_ADDR", ":3001"),
		OrderProcessorURL: envOr("ORDER_PROCESSOR_URL", "http://order-processor-python:5002"),
		ComplianceURL:     envOr("COMPLIANCE_URL", "http://compliance:80"),
		ScenarioPath:      envOr("SCENARIO_CONFIG_PATH", "scenario_config.json"),
		PaymentSlowDelay:  durationOr("PAYMENT_SLOW_DELAY", 9*time.Second),
		OrderSlowDelay:    durationOr("ORDER_SLOW_DELAY", 7*time.Second),
		DownstreamTimeout: durationOr("DOWNSTREAM_TIMEOUT", 10*time.Second),
		OTPTTL:            durationOr("OTP_TTL", 5*time.Minute),
		SMTP: SMTP{
			Host:     envOr("SMTP_HOST", "smtp.office365.com"),
			Port:     envOr("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOr("SMTP_FROM", "eMart OTP <no-reply@emart.local>"),
		},
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   envOr("AUDIT_TOPIC", "gateway.audit"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
