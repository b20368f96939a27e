// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docshare/internal/errors"
)

// User represents an account in the system. PasswordHash holds the argon2id
// digest, never the plain password. Verified flips to true once the email
// verification token is confirmed; verified-gated routes check it.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Image        string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email or username already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates an email/password pair that does not match.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
