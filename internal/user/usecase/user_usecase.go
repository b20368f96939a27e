// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	authUseCase "github.com/allisson/docshare/internal/auth/usecase"
	"github.com/allisson/docshare/internal/database"
	apperrors "github.com/allisson/docshare/internal/errors"
	outboxDomain "github.com/allisson/docshare/internal/outbox/domain"
	"github.com/allisson/docshare/internal/user/domain"
	appValidation "github.com/allisson/docshare/internal/validation"
)

// passwordRule is the strength policy applied to every new password.
var passwordRule = appValidation.PasswordStrength{
	MinLength:      8,
	RequireUpper:   true,
	RequireLower:   true,
	RequireNumber:  true,
	RequireSpecial: true,
}

// userUseCase implements UserUseCase.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	userDocRepo    UserDocumentRepository
	outboxRepo     OutboxEventRepository
	tokenUseCase   authUseCase.TokenUseCase
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	userDocRepo UserDocumentRepository,
	outboxRepo OutboxEventRepository,
	tokenUseCase authUseCase.TokenUseCase,
) (UserUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		userDocRepo:    userDocRepo,
		outboxRepo:     outboxRepo,
		tokenUseCase:   tokenUseCase,
		passwordHasher: hasher,
	}, nil
}

// validateRegisterUserInput validates the registration input.
func (u *userUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			validation.Length(1, 50).Error("username must be between 1 and 50 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			passwordRule,
		),
	)
	return appValidation.WrapValidationError(err)
}

// normalizeEmail lowercases and trims an email address for storage and lookups.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// queueEmailEvent writes an outbound email event for the given user and token.
func (u *userUseCase) queueEmailEvent(
	ctx context.Context,
	eventType string,
	user *domain.User,
	token *authDomain.Token,
) error {
	payload, err := json.Marshal(map[string]interface{}{
		"user_id":     user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"token_value": token.Value,
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event payload")
	}

	event := &outboxDomain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(payload),
		Status:    outboxDomain.OutboxEventStatusPending,
		Retries:   0,
	}

	if err := u.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// Register creates a new account, issues a verification token and writes the
// outbound email events, all in one transaction.
func (u *userUseCase) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := u.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := u.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     strings.TrimSpace(input.Username),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hashedPassword,
		Image:        strings.TrimSpace(input.Image),
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}

		createdPayload, err := json.Marshal(map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
			"email":    user.Email,
		})
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal event payload")
		}

		createdEvent := &outboxDomain.OutboxEvent{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: outboxDomain.EventUserCreated,
			Payload:   string(createdPayload),
			Status:    outboxDomain.OutboxEventStatusPending,
			Retries:   0,
		}
		if err := u.outboxRepo.Create(ctx, createdEvent); err != nil {
			return apperrors.Wrap(err, "failed to create outbox event")
		}

		token, err := u.tokenUseCase.CreateThrottled(ctx, user.ID, authDomain.VerificationToken)
		if err != nil {
			return err
		}

		return u.queueEmailEvent(ctx, outboxDomain.EventVerificationRequested, user, token)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate resolves an email/password pair to its user.
func (u *userUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// A missing account and a wrong password are indistinguishable.
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := u.passwordHasher.Verify([]byte(password), user.PasswordHash)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify password")
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Get retrieves a user by ID.
func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// Me returns the user together with the IDs of the documents they belong to.
func (u *userUseCase) Me(ctx context.Context, userID uuid.UUID) (*domain.User, []uuid.UUID, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	documentIDs, err := u.userDocRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return user, documentIDs, nil
}

// Update applies a partial profile update.
func (u *userUseCase) Update(
	ctx context.Context,
	userID uuid.UUID,
	input UpdateUserInput,
) (*domain.User, error) {
	if input.Username != nil {
		err := validation.Validate(*input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			validation.Length(1, 50).Error("username must be between 1 and 50 characters"),
		)
		if err != nil {
			return nil, appValidation.WrapValidationError(err)
		}
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Image != nil {
		user.Image = strings.TrimSpace(*input.Image)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the account and invalidates every outstanding token.
func (u *userUseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.tokenUseCase.InvalidateAll(ctx, userID); err != nil {
			return err
		}
		return u.userRepo.Delete(ctx, userID)
	})
}

// RequestVerification issues a throttled verification token for an unverified
// account and queues the email event.
func (u *userUseCase) RequestVerification(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Verified {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "email is already verified")
	}

	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		token, err := u.tokenUseCase.CreateThrottled(ctx, user.ID, authDomain.VerificationToken)
		if err != nil {
			return err
		}
		return u.queueEmailEvent(ctx, outboxDomain.EventVerificationRequested, user, token)
	})
}

// VerifyEmail confirms the account behind a verification token value and
// removes the token.
func (u *userUseCase) VerifyEmail(ctx context.Context, tokenValue string) error {
	if strings.TrimSpace(tokenValue) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "token value is required")
	}

	token, err := u.tokenUseCase.GetByValue(ctx, tokenValue, authDomain.VerificationToken)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	user, err := u.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	user.Verified = true

	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return u.tokenUseCase.Remove(ctx, user.ID, authDomain.VerificationToken)
	})
}

// RequestPasswordReset issues a throttled reset token and queues the email
// event. Unknown emails succeed silently.
func (u *userUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	if err := validation.Validate(email, validation.Required, appValidation.Email); err != nil {
		return appValidation.WrapValidationError(err)
	}

	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Account existence is never revealed through this endpoint.
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		token, err := u.tokenUseCase.CreateThrottled(ctx, user.ID, authDomain.PasswordResetToken)
		if err != nil {
			return err
		}
		return u.queueEmailEvent(ctx, outboxDomain.EventPasswordResetRequested, user, token)
	})
}

// ResetPassword replaces the password behind a reset token value and
// invalidates every outstanding token.
func (u *userUseCase) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if strings.TrimSpace(tokenValue) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "token value is required")
	}

	err := validation.Validate(newPassword,
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		passwordRule,
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	token, err := u.tokenUseCase.GetByValue(ctx, tokenValue, authDomain.PasswordResetToken)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	user, err := u.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	hashedPassword, err := u.passwordHasher.Hash([]byte(newPassword))
	if err != nil {
		return apperrors.Wrap(err, "failed to hash password")
	}
	user.PasswordHash = hashedPassword

	// Credentials changed: nothing issued before this moment stays valid.
	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return u.tokenUseCase.InvalidateAll(ctx, user.ID)
	})
}
