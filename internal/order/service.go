package order

import (
	"context"
	"log/slog"
	"time"

	"emart-gateway/internal/scenario"
	dErrors "emart-gateway/pkg/domain-errors"
)

// Submitter forwards a validated submission to the order-processor.
type Submitter interface {
	SubmitOrder(ctx context.Context, sub Submission) (Result, error)
}

// Service is the direct order intake path: scenario delay, shape
// validation, then passthrough to the order-processor.
type Service struct {
	scenarios *scenario.Resolver
	orders    Submitter
	slowDelay time.Duration
	logger    *slog.Logger
}

// Option configures optional Service dependencies.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSlowDelay overrides the payment_slow suspension applied before
// validation.
func WithSlowDelay(d time.Duration) Option {
	return func(s *Service) {
		s.slowDelay = d
	}
}

func NewService(scenarios *scenario.Resolver, orders Submitter, opts ...Option) *Service {
	s := &Service{
		scenarios: scenarios,
		orders:    orders,
		slowDelay: 7 * time.Second,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and forwards a submission. The scenario is consulted
// before any network call; payment_slow suspends only this request.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	if s.scenarios.Resolve(sub.UserID) == scenario.PaymentSlow {
		s.logger.InfoContext(ctx, "simulating payment slowness", "user_id", sub.UserID, "delay", s.slowDelay)
		if err := scenario.Wait(ctx, s.slowDelay); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "request aborted during simulated delay")
		}
	}

	if err := ValidateSubmission(sub); err != nil {
		return nil, err
	}
	// total is forwarded as supplied; the order-processor owns pricing.
	s.logger.DebugContext(ctx, "forwarding client-supplied total", "user_id", sub.UserID, "total", *sub.Total)

	result, err := s.orders.SubmitOrder(ctx, sub)
	if err != nil {
		return nil, err
	}
	return result, nil
}
