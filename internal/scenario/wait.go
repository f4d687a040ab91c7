package scenario

import (
	"context"
	"time"
)

// Wait suspends the current request's flow for d, or returns early when the
// context is done. It parks on a timer rather than blocking a worker, so
// unrelated concurrent requests are unaffected by injected slowness.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
