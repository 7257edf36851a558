// Package identity carries the request-scoped caller identity.
package identity

import (
	"context"
	"errors"

	"git.sr.ht/~relay/giftwise-backend/types"
)

// The demo account every unauthenticated request acts as. The frontend does
// not send credentials on resource calls, so this is the fallback caller.
const (
	DemoUserID    = "user_123"
	DemoUserEmail = "flashfolks@gmail.com"
	DemoUserName  = "Demo User"
)

type contextKey string

const userContextKey = contextKey("user")

// DemoUser returns the fallback identity.
func DemoUser() types.User {
	return types.User{ID: DemoUserID, Email: DemoUserEmail, Name: DemoUserName}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom retrieves the caller stored by the identity middleware.
// Returns false if no identity was attached to the context.
func UserFrom(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(userContextKey).(types.User)
	return user, ok
}

// ErrNoIdentity means a handler ran without the identity middleware in front of it.
var ErrNoIdentity = errors.New("no identity attached to request")

// Require is UserFrom for handlers: a missing identity is an internal error.
func Require(ctx context.Context) (types.User, error) {
	user, ok := UserFrom(ctx)
	if !ok {
		return types.User{}, ErrNoIdentity
	}
	return user, nil
}
