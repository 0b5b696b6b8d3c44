package context

import (
	"context"

	"github.com/muhammadheryan/user-dashboard/constant"
)

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constant.SessionIDKey, id)
}

// GetSessionID returns the session established by the session middleware.
func GetSessionID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.SessionIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constant.RequestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(constant.RequestIDKey).(string)
	return id
}
