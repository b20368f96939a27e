// Package usecase defines business logic interfaces for token operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	userDomain "github.com/allisson/docshare/internal/user/domain"
)

// TokenRepository defines persistence operations for tokens.
// Implementations must support transaction-aware operations via context
// propagation and must exclude expired rows from every lookup.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByID retrieves a live token by ID. Returns ErrTokenNotFound if the
	// token doesn't exist or has expired.
	GetByID(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error)

	// GetByValue retrieves a live token by exact value and type. Returns
	// ErrTokenNotFound on miss; no partial or case-normalized matching.
	GetByValue(ctx context.Context, value string, tokenType authDomain.TokenType) (*authDomain.Token, error)

	// GetByUser retrieves a live token for the given user and type.
	GetByUser(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) (*authDomain.Token, error)

	// UpdateThrottle performs a compare-and-swap on the throttle state.
	// The write only lands when the stored (date, counter) pair still equals
	// (expectedDate, expectedCounter); zero rows affected surfaces
	// ErrThrottleConflict.
	UpdateThrottle(
		ctx context.Context,
		tokenID uuid.UUID,
		date time.Time,
		counter int,
		expectedDate time.Time,
		expectedCounter int,
	) error

	// DeleteByUser removes the user's token of the given type. Idempotent.
	DeleteByUser(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) error

	// DeleteAllByUser removes every token owned by the user. Idempotent.
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error

	// CountExpired counts tokens created before the cutoff.
	CountExpired(ctx context.Context, before time.Time) (int64, error)

	// DeleteExpired removes tokens created before the cutoff and returns the
	// number of rows deleted.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// UserRepository is the slice of user persistence the token engine needs to
// resolve bearer values to accounts.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)
}

// TokenUseCase defines business logic operations for the token lifecycle,
// including the day-windowed issuance limiter used by email-sending flows.
type TokenUseCase interface {
	// Create issues a fresh token of the given type for the user. The
	// throttle window starts now with a counter of 1.
	Create(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) (*authDomain.Token, error)

	// GetByValue resolves a token by exact value and type.
	GetByValue(ctx context.Context, value string, tokenType authDomain.TokenType) (*authDomain.Token, error)

	// GetByUser resolves the user's token of the given type.
	GetByUser(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) (*authDomain.Token, error)

	// Remove deletes the user's token of the given type. Removing a token
	// that doesn't exist is not an error.
	Remove(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) error

	// InvalidateAll deletes every outstanding token for the user. Called on
	// account deletion and password reset so no stale credential survives.
	InvalidateAll(ctx context.Context, userID uuid.UUID) error

	// CreateThrottled returns the user's token for the given type, enforcing
	// the daily issuance limit. Within a UTC calendar day the same token is
	// handed out up to the limit, then ErrThrottleExceeded; crossing a day
	// boundary resets the window.
	CreateThrottled(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) (*authDomain.Token, error)

	// Authenticate resolves an authorization token value to its owning user.
	// Returns ErrInvalidCredentials when the value doesn't resolve.
	Authenticate(ctx context.Context, value string) (*userDomain.User, error)

	// CleanupExpired removes tokens past their TTL. With dryRun it only
	// reports how many rows would be removed.
	CleanupExpired(ctx context.Context, dryRun bool) (int64, error)
}
