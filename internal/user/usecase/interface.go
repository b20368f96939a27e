// Package usecase defines business logic interfaces for user account operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	outboxDomain "github.com/allisson/docshare/internal/outbox/domain"
	"github.com/allisson/docshare/internal/user/domain"
)

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

// UpdateUserInput contains the partial profile update data. Nil fields are
// left untouched.
type UpdateUserInput struct {
	Username *string `json:"username"`
	Image    *string `json:"image"`
}

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context
// propagation.
type UserRepository interface {
	// Create stores a new user. A username or email collision surfaces
	// ErrUserAlreadyExists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email. Returns ErrUserNotFound
	// if not found.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists the user's mutable fields.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the user. Dependent rows are removed by the store.
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserDocumentRepository reads the per-user back-reference list of document IDs.
type UserDocumentRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// OutboxEventRepository writes outbound events inside the issuing transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// UserUseCase defines business logic operations for user accounts.
type UserUseCase interface {
	// Register creates a new account, issues a verification token and writes
	// the outbound email events, all in one transaction.
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// Authenticate resolves an email/password pair to its user. A miss on
	// either side is ErrInvalidCredentials; which side failed is never revealed.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// Me returns the user together with the IDs of the documents they belong to.
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, []uuid.UUID, error)

	// Update applies a partial profile update.
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)

	// Delete removes the account and invalidates every outstanding token.
	Delete(ctx context.Context, userID uuid.UUID) error

	// RequestVerification issues a throttled verification token for an
	// unverified account and queues the email event.
	RequestVerification(ctx context.Context, userID uuid.UUID) error

	// VerifyEmail confirms the account behind a verification token value and
	// removes the token.
	VerifyEmail(ctx context.Context, tokenValue string) error

	// RequestPasswordReset issues a throttled reset token and queues the email
	// event. An unknown email succeeds silently so account existence is not
	// revealed; throttle exhaustion still surfaces.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword replaces the password behind a reset token value and
	// invalidates every outstanding token.
	ResetPassword(ctx context.Context, tokenValue, newPassword string) error
}
