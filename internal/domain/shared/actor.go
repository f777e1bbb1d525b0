package shared

import (
	"context"

	"github.com/google/uuid"
)

type actorContextKey struct{}

// WithActor returns a context carrying the acting user's ID. The HTTP layer
// attaches it after authentication so writes can record who made them.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorContextKey{}, userID)
}

// StampActor records the acting user from ctx as the entity's creator.
// Contexts without an actor (system jobs, migrations) leave CreatedBy unset.
func StampActor(ctx context.Context, e interface{ SetCreatedBy(userID uuid.UUID) }) {
	if id, ok := ctx.Value(actorContextKey{}).(uuid.UUID); ok {
		e.SetCreatedBy(id)
	}
}
