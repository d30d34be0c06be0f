// Package requestctx carries per-request values through the context:
// the correlation id assigned at the edge and the authenticated actor.
package requestctx

import (
	"context"

	"talenthub/internal/domain/auth"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyActor
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// RequestID returns the correlation id, empty when the request never
// passed through the edge middleware.
func RequestID(ctx context.Context) string {
	value, _ := ctx.Value(keyRequestID).(string)
	return value
}

func WithActor(ctx context.Context, actor auth.Actor) context.Context {
	return context.WithValue(ctx, keyActor, actor)
}

// Actor returns the authenticated caller; ok is false for anonymous
// requests.
func Actor(ctx context.Context) (auth.Actor, bool) {
	actor, ok := ctx.Value(keyActor).(auth.Actor)
	return actor, ok
}
