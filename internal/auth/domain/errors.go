package domain

import (
	"github.com/allisson/docshare/internal/errors"
)

// Token domain errors.
var (
	// ErrTokenNotFound indicates no live token matched the lookup. Callers
	// decide whether absence is fatal; the authentication middleware treats
	// it as an anonymous request.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrInvalidCredentials indicates a bearer value that does not resolve to
	// a user. Kept generic to avoid leaking whether the value ever existed.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrThrottleConflict indicates a concurrent writer updated the throttle
	// state between read and compare-and-swap.
	ErrThrottleConflict = errors.Wrap(errors.ErrConflict, "token throttle state changed concurrently")
)
