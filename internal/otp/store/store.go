// Package store holds the OTP record stores. Records live for one TTL
// window, are keyed by subject, and are consumed at most once.
package store

import (
	"context"
	"time"
)

// Record is an outstanding passcode for one subject. A new issuance for the
// same subject overwrites any prior record; there is no queueing of
// multiple outstanding codes.
type Record struct {
	Subject  string
	Code     string
	IssuedAt time.Time
}

// Store persists outstanding OTP records.
//
// Consume is the one-time-use primitive: it atomically compares the stored
// code for subject against code and deletes the record only on an exact
// match. A mismatch, a missing record, or an expired record consumes
// nothing and mutates nothing.
type Store interface {
	Save(ctx context.Context, rec Record, ttl time.Duration) error
	Consume(ctx context.Context, subject, code string) (bool, error)
	Delete(ctx context.Context, subject string) error
}
