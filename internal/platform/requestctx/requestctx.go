// Package requestctx carries the per-request correlation id through the
// context so handlers and stores can tag their log lines with it.
package requestctx

import "context"

type key struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, key{}, requestID)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(key{}).(string)
	return requestID
}
