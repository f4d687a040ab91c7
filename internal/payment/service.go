// Package payment orchestrates the two-phase pay-and-order flow: scenario
// fault injection, compliance check, order submission, aggregation.
package payment

import (
	"context"
	"log/slog"
	"time"

	"emart-gateway/internal/downstream/compliance"
	"emart-gateway/internal/order"
	"emart-gateway/internal/payment/metrics"
	"emart-gateway/internal/platform/audit"
	"emart-gateway/internal/scenario"
	dErrors "emart-gateway/pkg/domain-errors"
)

// ComplianceChecker runs the balance/KYC verdict for one payment attempt.
type ComplianceChecker interface {
	Check(ctx context.Context, userID string, cartTotal float64) (*compliance.Verdict, error)
}

// Request is one initiatepayment attempt. Amount is a pointer so "missing"
// and "zero" stay distinguishable during validation.
type Request struct {
	UserID string           `json:"user_id"`
	Amount *float64         `json:"amount"`
	Items  []order.LineItem `json:"items"`
}

// Result aggregates the compliance verdict and the order-processor's
// response. It exists only on the success path; any failure short-circuits
// before aggregation.
type Result struct {
	Message    string              `json:"message"`
	Compliance *compliance.Verdict `json:"compliance"`
	Order      order.Result        `json:"order"`
}

// Service is the payment orchestrator.
type Service struct {
	scenarios  *scenario.Resolver
	compliance ComplianceChecker
	orders     order.Submitter
	slowDelay  time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	audit      audit.Publisher
}

// Option configures optional Service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAudit(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

// WithSlowDelay overrides the payment_slow suspension.
func WithSlowDelay(d time.Duration) Option {
	return func(s *Service) {
		s.slowDelay = d
	}
}

func New(scenarios *scenario.Resolver, checker ComplianceChecker, orders order.Submitter, opts ...Option) *Service {
	s := &Service{
		scenarios:  scenarios,
		compliance: checker,
		orders:     orders,
		slowDelay:  9 * time.Second,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pay runs the strictly sequential orchestration. There is no compensation:
// a submission failure after compliance approval leaves the approval
// standing, and the divergence is flagged on the audit trail.
func (s *Service) Pay(ctx context.Context, req Request) (*Result, error) {
	sc := s.scenarios.Resolve(req.UserID)

	if sc == scenario.PaymentSlow {
		s.metrics.RecordFault(string(sc))
		s.logger.InfoContext(ctx, "simulating payment slowness", "user_id", req.UserID, "delay", s.slowDelay)
		if err := scenario.Wait(ctx, s.slowDelay); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "request aborted during simulated delay")
		}
	}

	if req.UserID == "" || req.Amount == nil || len(req.Items) == 0 {
		s.metrics.RecordPayment("invalid")
		return nil, dErrors.New(dErrors.CodeValidation, "Missing or invalid user_id, amount, or items")
	}

	if sc == scenario.GatewayTimeout {
		s.metrics.RecordFault(string(sc))
		s.metrics.RecordPayment("injected_timeout")
		s.publishAudit(ctx, audit.NewEvent(audit.TypeFaultInjected, req.UserID, map[string]any{"scenario": string(sc)}))
		s.logger.InfoContext(ctx, "simulating gateway timeout", "user_id", req.UserID)
		return nil, dErrors.New(dErrors.CodeGatewayTimeout, "Gateway Timeout")
	}

	verdict, err := s.checkCompliance(ctx, req)
	if err != nil {
		s.metrics.RecordPayment("downstream_error")
		return nil, err
	}
	if !verdict.Approved() {
		reason := verdict.Reason
		if reason == "" {
			reason = "Unknown compliance failure"
		}
		s.metrics.RecordPayment("compliance_rejected")
		s.logger.InfoContext(ctx, "compliance rejected payment", "user_id", req.UserID, "reason", reason)
		return nil, dErrors.New(dErrors.CodeComplianceRejected, reason)
	}
	s.logger.InfoContext(ctx, "compliance approved", "user_id", req.UserID)

	sub := order.Submission{UserID: req.UserID, Items: req.Items, Total: req.Amount}
	if err := order.ValidateSubmission(sub); err != nil {
		s.metrics.RecordPayment("invalid")
		return nil, err
	}

	orderResult, err := s.submitOrder(ctx, sub)
	if err != nil {
		// Approved but unfulfilled: nothing reverses the compliance
		// decision, so flag the divergence for reconciliation.
		s.metrics.RecordPayment("divergence")
		s.publishAudit(ctx, audit.NewEvent(audit.TypePaymentDivergence, req.UserID, map[string]any{
			"amount": *req.Amount,
			"error":  err.Error(),
		}))
		s.logger.ErrorContext(ctx, "order submission failed after compliance approval", "user_id", req.UserID, "error", err)
		return nil, err
	}
	s.logger.InfoContext(ctx, "order submitted", "user_id", req.UserID)

	s.metrics.RecordPayment("success")
	s.publishAudit(ctx, audit.NewEvent(audit.TypePaymentCompleted, req.UserID, map[string]any{"amount": *req.Amount}))

	return &Result{
		Message:    "Payment and order successful",
		Compliance: verdict,
		Order:      orderResult,
	}, nil
}

func (s *Service) checkCompliance(ctx context.Context, req Request) (*compliance.Verdict, error) {
	start := time.Now()
	verdict, err := s.compliance.Check(ctx, req.UserID, *req.Amount)
	s.metrics.ObserveDownstream("compliance", time.Since(start))
	return verdict, err
}

func (s *Service) submitOrder(ctx context.Context, sub order.Submission) (order.Result, error) {
	start := time.Now()
	result, err := s.orders.SubmitOrder(ctx, sub)
	s.metrics.ObserveDownstream("order-processor", time.Since(start))
	return result, err
}

func (s *Service) publishAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit publish failed", "event_type", event.Type, "error", err)
	}
}
