// Package mocks provides mock implementations of user use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/docshare/internal/user/domain"
	"github.com/allisson/docshare/internal/user/usecase"
)

// UserUseCase is a mock implementation of usecase.UserUseCase.
type UserUseCase struct {
	mock.Mock
}

func (m *UserUseCase) Register(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserUseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserUseCase) Me(ctx context.Context, userID uuid.UUID) (*domain.User, []uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	var documentIDs []uuid.UUID
	if args.Get(1) != nil {
		documentIDs = args.Get(1).([]uuid.UUID)
	}
	return args.Get(0).(*domain.User), documentIDs, args.Error(2)
}

func (m *UserUseCase) Update(
	ctx context.Context,
	userID uuid.UUID,
	input usecase.UpdateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserUseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserUseCase) RequestVerification(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserUseCase) VerifyEmail(ctx context.Context, tokenValue string) error {
	args := m.Called(ctx, tokenValue)
	return args.Error(0)
}

func (m *UserUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *UserUseCase) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	args := m.Called(ctx, tokenValue, newPassword)
	return args.Error(0)
}
