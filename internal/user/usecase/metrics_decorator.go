package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docshare/internal/metrics"
	"github.com/allisson/docshare/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration for a completed call.
func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

func (u *userUseCaseWithMetrics) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "user_register", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Authenticate(ctx, email, password)
	u.record(ctx, "user_authenticate", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, userID)
	u.record(ctx, "user_get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Me(ctx context.Context, userID uuid.UUID) (*domain.User, []uuid.UUID, error) {
	start := time.Now()
	user, documentIDs, err := u.next.Me(ctx, userID)
	u.record(ctx, "user_me", start, err)
	return user, documentIDs, err
}

func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	userID uuid.UUID,
	input UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, userID, input)
	u.record(ctx, "user_update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, userID)
	u.record(ctx, "user_delete", start, err)
	return err
}

func (u *userUseCaseWithMetrics) RequestVerification(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := u.next.RequestVerification(ctx, userID)
	u.record(ctx, "user_request_verification", start, err)
	return err
}

func (u *userUseCaseWithMetrics) VerifyEmail(ctx context.Context, tokenValue string) error {
	start := time.Now()
	err := u.next.VerifyEmail(ctx, tokenValue)
	u.record(ctx, "user_verify_email", start, err)
	return err
}

func (u *userUseCaseWithMetrics) RequestPasswordReset(ctx context.Context, email string) error {
	start := time.Now()
	err := u.next.RequestPasswordReset(ctx, email)
	u.record(ctx, "user_request_password_reset", start, err)
	return err
}

func (u *userUseCaseWithMetrics) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	start := time.Now()
	err := u.next.ResetPassword(ctx, tokenValue, newPassword)
	u.record(ctx, "user_reset_password", start, err)
	return err
}
