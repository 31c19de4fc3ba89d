// Package contextkeys defines typed context keys shared across the service.
package contextkeys

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID returns a copy of ctx carrying the given request ID.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey, reqID)
}

// GetRequestID extracts the request ID from ctx, if present.
func GetRequestID(ctx context.Context) (string, bool) {
	reqID, ok := ctx.Value(requestIDKey).(string)
	return reqID, ok
}
