// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	userDomain "github.com/allisson/docshare/internal/user/domain"
)

// userKey is a context key type for storing authenticated users.
type userKey struct{}

// WithUser stores an authenticated user in the context.
// This is typically called by the authentication middleware after resolving
// a bearer value.
func WithUser(ctx context.Context, user *userDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves an authenticated user from the context.
// Returns (user, true) if a user is present, or (nil, false) for anonymous
// requests. Handlers that allow anonymous access (public document reads)
// treat absence as a valid caller state.
func GetUser(ctx context.Context) (*userDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.User)
	return user, ok
}
