package gate

import (
	"context"

	"github.com/google/uuid"
)

// actorCtxKey is the context key for the acting account.
type actorCtxKey struct{}

// WithActor stores the acting account in the context.
func WithActor(ctx context.Context, account uuid.UUID) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, account)
}

// ActorFromContext retrieves the acting account from the context.
func ActorFromContext(ctx context.Context) (uuid.UUID, bool) {
	account, ok := ctx.Value(actorCtxKey{}).(uuid.UUID)
	return account, ok
}
