// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Values are set by transport middleware and consumed
// by services, which this way never import net/http.
package requestcontext

import "context"

type requestIDKey struct{}

// RequestID retrieves the request ID from the context. Returns an empty
// string if not set (background jobs, tests without the middleware chain).
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
