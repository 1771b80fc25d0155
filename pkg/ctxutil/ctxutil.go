package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
)

// WithActor stores the authenticated actor in the context.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromCtx extracts the actor from the context.
// Returns false if the value is missing, has a nil ID, or is the wrong type.
func ActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	if !ok || actor.ID == uuid.Nil {
		return domain.Actor{}, false
	}
	return actor, true
}

// ActorIDFromCtx extracts just the actor's ID from the context.
// Returns uuid.Nil and false if no actor is present.
func ActorIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	actor, ok := ActorFromCtx(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return actor.ID, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
