// Package metrics exposes OTP issuance and verification counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Issued         prometheus.Counter
	IssueFailures  prometheus.Counter
	Verified       prometheus.Counter
	VerifyRejected prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Issued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emart_gateway_otp_issued_total",
			Help: "Total number of one-time passcodes issued",
		}),
		IssueFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emart_gateway_otp_issue_failures_total",
			Help: "Total number of failed OTP issuance attempts",
		}),
		Verified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emart_gateway_otp_verified_total",
			Help: "Total number of successful OTP verifications",
		}),
		VerifyRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emart_gateway_otp_verify_rejected_total",
			Help: "Total number of rejected OTP verification attempts",
		}),
	}
}

// The increment helpers are nil-safe so services can run without metrics
// wired, e.g. in tests.

func (m *Metrics) IncrementIssued() {
	if m != nil {
		m.Issued.Inc()
	}
}

func (m *Metrics) IncrementIssueFailures() {
	if m != nil {
		m.IssueFailures.Inc()
	}
}

func (m *Metrics) IncrementVerified() {
	if m != nil {
		m.Verified.Inc()
	}
}

func (m *Metrics) IncrementVerifyRejected() {
	if m != nil {
		m.VerifyRejected.Inc()
	}
}
