// Package mocks provides mock implementations of auth use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	userDomain "github.com/allisson/docshare/internal/user/domain"
)

// TokenUseCase is a mock implementation of usecase.TokenUseCase.
type TokenUseCase struct {
	mock.Mock
}

func (m *TokenUseCase) Create(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	args := m.Called(ctx, userID, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *TokenUseCase) GetByValue(
	ctx context.Context,
	value string,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	args := m.Called(ctx, value, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *TokenUseCase) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	args := m.Called(ctx, userID, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *TokenUseCase) Remove(ctx context.Context, userID uuid.UUID, tokenType authDomain.TokenType) error {
	args := m.Called(ctx, userID, tokenType)
	return args.Error(0)
}

func (m *TokenUseCase) InvalidateAll(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *TokenUseCase) CreateThrottled(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	args := m.Called(ctx, userID, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *TokenUseCase) Authenticate(ctx context.Context, value string) (*userDomain.User, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *TokenUseCase) CleanupExpired(ctx context.Context, dryRun bool) (int64, error) {
	args := m.Called(ctx, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
