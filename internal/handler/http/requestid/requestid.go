// Package requestid tags every HTTP request with a unique ID so log lines
// from one request can be correlated.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the ID between client and server. A client may
// supply its own; it is echoed back either way.
const RequestIDHeader = "X-Request-ID"

type contextKey struct{}

var requestIDKey contextKey

// FromContext returns the request ID stored in ctx, or "" when the request
// never passed through Middleware.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRequestID stores id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// Middleware reuses the client-supplied X-Request-ID or assigns a fresh
// UUID, mirrors it on the response, and threads it through the request
// context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
