package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	"github.com/allisson/docshare/internal/metrics"
	userDomain "github.com/allisson/docshare/internal/user/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration for a completed call.
func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", operation, status)
	t.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Create records metrics for token creation operations.
func (t *tokenUseCaseWithMetrics) Create(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	start := time.Now()
	token, err := t.next.Create(ctx, userID, tokenType)
	t.record(ctx, "token_create", start, err)
	return token, err
}

// GetByValue records metrics for token value lookups.
func (t *tokenUseCaseWithMetrics) GetByValue(
	ctx context.Context,
	value string,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	start := time.Now()
	token, err := t.next.GetByValue(ctx, value, tokenType)
	t.record(ctx, "token_get_by_value", start, err)
	return token, err
}

// GetByUser records metrics for token user lookups.
func (t *tokenUseCaseWithMetrics) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	start := time.Now()
	token, err := t.next.GetByUser(ctx, userID, tokenType)
	t.record(ctx, "token_get_by_user", start, err)
	return token, err
}

// Remove records metrics for single-token removal operations.
func (t *tokenUseCaseWithMetrics) Remove(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) error {
	start := time.Now()
	err := t.next.Remove(ctx, userID, tokenType)
	t.record(ctx, "token_remove", start, err)
	return err
}

// InvalidateAll records metrics for full-invalidation operations.
func (t *tokenUseCaseWithMetrics) InvalidateAll(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := t.next.InvalidateAll(ctx, userID)
	t.record(ctx, "token_invalidate_all", start, err)
	return err
}

// CreateThrottled records metrics for throttled issuance operations.
func (t *tokenUseCaseWithMetrics) CreateThrottled(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	start := time.Now()
	token, err := t.next.CreateThrottled(ctx, userID, tokenType)
	t.record(ctx, "token_create_throttled", start, err)
	return token, err
}

// Authenticate records metrics for bearer authentication operations.
func (t *tokenUseCaseWithMetrics) Authenticate(ctx context.Context, value string) (*userDomain.User, error) {
	start := time.Now()
	user, err := t.next.Authenticate(ctx, value)
	t.record(ctx, "token_authenticate", start, err)
	return user, err
}

// CleanupExpired records metrics for expiry sweeps.
func (t *tokenUseCaseWithMetrics) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := t.next.CleanupExpired(ctx, dryRun)
	t.record(ctx, "token_cleanup_expired", start, err)
	return count, err
}
