// Package scenario maps user identifiers to named fault-injection scenarios.
// The mapping is loaded once at startup and is immutable afterwards, so
// lookups need no synchronization.
package scenario

import (
	"encoding/json"
	"log/slog"
	"os"
)

// Scenario names a fault-injection behavior applied to a user's requests.
type Scenario string

const (
	// Normal is the default: no fault injected.
	Normal Scenario = "normal_flow"
	// PaymentSlow delays payment and order handling for the user.
	PaymentSlow Scenario = "payment_slow"
	// GatewayTimeout makes initiatepayment fail with 504 before any
	// downstream call.
	GatewayTimeout Scenario = "gateway_timeout"
	// LoginDelay is honored by the order-processor, not the gateway; it is
	// listed so configs mentioning it round-trip cleanly.
	LoginDelay Scenario = "login_delay"
)

// Resolver answers "which scenario applies to this user". Resolution never
// fails: an unknown user gets Normal.
type Resolver struct {
	byUser map[string]Scenario
}

// New builds a resolver from an explicit mapping. Used directly in tests.
func New(byUser map[string]Scenario) *Resolver {
	if byUser == nil {
		byUser = map[string]Scenario{}
	}
	return &Resolver{byUser: byUser}
}

// NewFromFile loads the JSON scenario config at path. A missing or invalid
// file degrades to an empty mapping rather than preventing startup.
func NewFromFile(path string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("could not load scenario config, all users get normal_flow", "path", path, "error", err)
		return New(nil)
	}

	var byUser map[string]Scenario
	if err := json.Unmarshal(raw, &byUser); err != nil {
		logger.Warn("invalid scenario config, all users get normal_flow", "path", path, "error", err)
		return New(nil)
	}

	logger.Info("loaded scenario config", "path", path, "entries", len(byUser))
	return New(byUser)
}

// Resolve returns the scenario for userID, defaulting to Normal.
func (r *Resolver) Resolve(userID string) Scenario {
	if s, ok := r.byUser[userID]; ok {
		return s
	}
	return Normal
}
