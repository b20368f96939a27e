// Package usecase implements business logic orchestration for token operations.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	authService "github.com/allisson/docshare/internal/auth/service"
	"github.com/allisson/docshare/internal/config"
	apperrors "github.com/allisson/docshare/internal/errors"
	userDomain "github.com/allisson/docshare/internal/user/domain"
)

// throttleMaxRetries bounds the compare-and-swap retry loop in CreateThrottled.
// A loss means another request for the same user updated the throttle state
// between our read and write; re-reading usually resolves it immediately.
const throttleMaxRetries = 3

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	config       *config.Config
	tokenRepo    TokenRepository
	userRepo     UserRepository
	tokenService authService.TokenService
}

// Create issues a fresh token of the given type for the user.
func (t *tokenUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}

	value, err := t.tokenService.GenerateValue()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := &authDomain.Token{
		ID:              uuid.Must(uuid.NewV7()),
		Value:           value,
		Type:            tokenType,
		UserID:          userID,
		ThrottleDate:    now,
		ThrottleCounter: 1,
		CreatedAt:       now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}

// GetByValue resolves a token by exact value and type. Absence surfaces the
// typed ErrTokenNotFound; callers decide whether that is fatal.
func (t *tokenUseCase) GetByValue(
	ctx context.Context,
	value string,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	if value == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token value is required")
	}
	return t.tokenRepo.GetByValue(ctx, value, tokenType)
}

// GetByUser resolves the user's token of the given type.
func (t *tokenUseCase) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}
	return t.tokenRepo.GetByUser(ctx, userID, tokenType)
}

// Remove deletes the user's token of the given type. Idempotent.
func (t *tokenUseCase) Remove(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) error {
	if userID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}
	return t.tokenRepo.DeleteByUser(ctx, userID, tokenType)
}

// InvalidateAll deletes every outstanding token for the user. Idempotent.
func (t *tokenUseCase) InvalidateAll(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}
	return t.tokenRepo.DeleteAllByUser(ctx, userID)
}

// CreateThrottled returns the user's token for the given type, enforcing the
// daily issuance limit.
//
// Per attempt:
//  1. Read the token for (user, type); if absent, create one with a fresh
//     window ({today, counter 1}).
//  2. If a UTC calendar-day boundary has been crossed since ThrottleDate,
//     compare-and-swap the window back to {today, 1}. The token keeps its
//     Value, so each user holds at most one outstanding link per type.
//  3. If the counter has reached the daily limit, fail with
//     ErrThrottleExceeded without mutating anything.
//  4. Otherwise compare-and-swap the counter up by one, date unchanged.
//
// Both swaps compare against the (date, counter) pair observed in step 1, so
// a reset that raced a stale increment across a day boundary cannot be
// silently overwritten. A compare-and-swap loss means a concurrent request
// moved the window; the loop re-reads and retries a bounded number of times
// before surfacing the conflict.
func (t *tokenUseCase) CreateThrottled(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user id is required")
	}

	for attempt := 0; attempt < throttleMaxRetries; attempt++ {
		token, err := t.tokenRepo.GetByUser(ctx, userID, tokenType)
		if err != nil {
			if errors.Is(err, authDomain.ErrTokenNotFound) {
				return t.Create(ctx, userID, tokenType)
			}
			return nil, err
		}

		now := time.Now().UTC()

		var newDate time.Time
		var newCounter int
		switch {
		case !token.SameThrottleDay(now):
			// Day boundary crossed: reset the window, keep the value.
			newDate, newCounter = now, 1
		case token.ThrottleCounter >= t.config.TokenThrottleDailyLimit:
			return nil, apperrors.Wrap(apperrors.ErrThrottleExceeded, "reached maximum requests for today")
		default:
			newDate, newCounter = token.ThrottleDate, token.ThrottleCounter+1
		}

		err = t.tokenRepo.UpdateThrottle(ctx, token.ID, newDate, newCounter, token.ThrottleDate, token.ThrottleCounter)
		if err != nil {
			if errors.Is(err, authDomain.ErrThrottleConflict) {
				continue
			}
			return nil, err
		}

		token.ThrottleDate = newDate
		token.ThrottleCounter = newCounter
		return token, nil
	}

	return nil, authDomain.ErrThrottleConflict
}

// Authenticate resolves an authorization token value to its owning user.
//
// Misses are reported as ErrInvalidCredentials regardless of cause (unknown
// value, expired token, orphaned user) to avoid leaking which one it was.
func (t *tokenUseCase) Authenticate(ctx context.Context, value string) (*userDomain.User, error) {
	if value == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	token, err := t.tokenRepo.GetByValue(ctx, value, authDomain.AuthorizationToken)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	user, err := t.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// CleanupExpired removes tokens past their TTL. With dryRun it only reports
// how many rows would be removed.
func (t *tokenUseCase) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	before := time.Now().UTC().Add(-t.config.TokenTTL)

	if dryRun {
		return t.tokenRepo.CountExpired(ctx, before)
	}
	return t.tokenRepo.DeleteExpired(ctx, before)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	tokenRepo TokenRepository,
	userRepo UserRepository,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:       config,
		tokenRepo:    tokenRepo,
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}
