// Package mocks provides mock implementations of document use case interfaces for testing.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	docDomain "github.com/allisson/docshare/internal/document/domain"
)

// DocumentUseCase is a mock implementation of usecase.DocumentUseCase.
type DocumentUseCase struct {
	mock.Mock
}

func (m *DocumentUseCase) Create(
	ctx context.Context,
	actorID uuid.UUID,
	name, privacy string,
	content json.RawMessage,
) (*docDomain.Document, error) {
	args := m.Called(ctx, actorID, name, privacy, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.Document), args.Error(1)
}

func (m *DocumentUseCase) Get(ctx context.Context, actorID, documentID uuid.UUID) (*docDomain.Document, error) {
	args := m.Called(ctx, actorID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.Document), args.Error(1)
}

func (m *DocumentUseCase) ListPublic(ctx context.Context, offset, limit int) ([]*docDomain.Document, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*docDomain.Document), args.Error(1)
}

func (m *DocumentUseCase) UpdateContent(
	ctx context.Context,
	actorID, documentID uuid.UUID,
	content json.RawMessage,
) (*docDomain.Document, error) {
	args := m.Called(ctx, actorID, documentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.Document), args.Error(1)
}

func (m *DocumentUseCase) UpdatePrivacy(
	ctx context.Context,
	actorID, documentID uuid.UUID,
	privacy string,
) (*docDomain.Document, error) {
	args := m.Called(ctx, actorID, documentID, privacy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.Document), args.Error(1)
}

func (m *DocumentUseCase) AddMember(
	ctx context.Context,
	actorID, documentID, targetID uuid.UUID,
	access string,
) (*docDomain.Document, error) {
	args := m.Called(ctx, actorID, documentID, targetID, access)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.Document), args.Error(1)
}

func (m *DocumentUseCase) RemoveMember(
	ctx context.Context,
	actorID, documentID, targetID uuid.UUID,
) (*docDomain.Document, error) {
	args := m.Called(ctx, actorID, documentID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.Document), args.Error(1)
}

func (m *DocumentUseCase) Delete(ctx context.Context, actorID, documentID uuid.UUID) error {
	args := m.Called(ctx, actorID, documentID)
	return args.Error(0)
}
