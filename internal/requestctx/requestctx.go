package requestctx

import "context"

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Header carries the request id between the record client and the store.
const Header = "X-Request-ID"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}
