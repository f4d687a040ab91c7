// Package audit records payment lifecycle events. The orchestrator emits an
// event whenever compliance approval and order submission diverge, since the
// flow has no compensation step to reconcile them.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the gateway.
const (
	TypePaymentCompleted  = "payment_completed"
	TypePaymentDivergence = "payment_divergence"
	TypeFaultInjected     = "fault_injected"
)

// Event is a single audit record.
type Event struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	UserID string         `json:"user_id"`
	At     time.Time      `json:"at"`
	Detail map[string]any `json:"detail,omitempty"`
}

// NewEvent stamps an event with an ID and timestamp.
func NewEvent(eventType, userID string, detail map[string]any) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		UserID: userID,
		At:     time.Now().UTC(),
		Detail: detail,
	}
}

// Publisher delivers audit events to a sink. Publish must not block the
// request path longer than the sink's own timeout.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes audit events to the structured log. It is the default
// sink when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "audit event",
		"event_id", event.ID,
		"event_type", event.Type,
		"user_id", event.UserID,
		"detail", event.Detail,
	)
	return nil
}
