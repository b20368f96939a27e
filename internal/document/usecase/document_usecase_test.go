package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	docDomain "github.com/allisson/docshare/internal/document/domain"
	apperrors "github.com/allisson/docshare/internal/errors"
)

// mockTxManager runs the callback directly without a real transaction.
type mockTxManager struct{}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mockDocumentRepository is a mock implementation of DocumentRepository for testing.
type mockDocumentRepository struct {
	mock.Mock
}

func (m *mockDocumentRepository) Create(ctx context.Context, doc *docDomain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *mockDocumentRepository) Get(ctx context.Context, documentID uuid.UUID) (*docDomain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docDomain.Document), args.Error(1)
}

func (m *mockDocumentRepository) Update(
	ctx context.Context,
	doc *docDomain.Document,
	expectedVersion int64,
) error {
	args := m.Called(ctx, doc, expectedVersion)
	return args.Error(0)
}

func (m *mockDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *mockDocumentRepository) ListPublic(
	ctx context.Context,
	offset, limit int,
) ([]*docDomain.Document, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*docDomain.Document), args.Error(1)
}

// mockUserDocumentRepository is a mock implementation of UserDocumentRepository for testing.
type mockUserDocumentRepository struct {
	mock.Mock
}

func (m *mockUserDocumentRepository) Add(ctx context.Context, userID, documentID uuid.UUID) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func (m *mockUserDocumentRepository) Remove(ctx context.Context, userID, documentID uuid.UUID) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func (m *mockUserDocumentRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUseCase(docRepo DocumentRepository, userDocRepo UserDocumentRepository) DocumentUseCase {
	return NewDocumentUseCase(&mockTxManager{}, docRepo, userDocRepo, testLogger())
}

func privateDoc(adminID uuid.UUID, extra ...docDomain.Member) *docDomain.Document {
	members := append([]docDomain.Member{{UserID: adminID, Access: docDomain.AdminAccess}}, extra...)
	return &docDomain.Document{
		ID:      uuid.Must(uuid.NewV7()),
		Name:    "design-notes",
		Privacy: docDomain.PrivateDocument,
		Content: json.RawMessage(`{"title":"notes"}`),
		Members: members,
		Version: 1,
	}
}

func TestDocumentUseCase_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.Must(uuid.NewV7())
	content := json.RawMessage(`{"title":"hello"}`)

	t.Run("Error_AnonymousActor", func(t *testing.T) {
		uc := newUseCase(&mockDocumentRepository{}, &mockUserDocumentRepository{})

		_, err := uc.Create(ctx, uuid.Nil, "doc", "private", content)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		uc := newUseCase(&mockDocumentRepository{}, &mockUserDocumentRepository{})

		_, err := uc.Create(ctx, actorID, "   ", "private", content)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_UnknownPrivacy", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.Create(ctx, actorID, "doc", "shared", content)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

		// Validation happens before any store call
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidJSONContent", func(t *testing.T) {
		uc := newUseCase(&mockDocumentRepository{}, &mockUserDocumentRepository{})

		_, err := uc.Create(ctx, actorID, "doc", "private", json.RawMessage(`{"broken"`))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Success_CreatorIsSoleAdmin", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		mockUserDocRepo := &mockUserDocumentRepository{}

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc *docDomain.Document) bool {
			return doc.Name == "doc" &&
				doc.Privacy == docDomain.PrivateDocument &&
				len(doc.Members) == 1 &&
				doc.Members[0].UserID == actorID &&
				doc.Members[0].Access == docDomain.AdminAccess &&
				doc.Version == 1
		})).Return(nil).Once()
		mockUserDocRepo.On("Add", mock.Anything, actorID, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()

		uc := newUseCase(mockRepo, mockUserDocRepo)

		doc, err := uc.Create(ctx, actorID, "doc", "private", content)
		require.NoError(t, err)
		assert.Equal(t, actorID, doc.Members[0].UserID)

		mockRepo.AssertExpectations(t)
		mockUserDocRepo.AssertExpectations(t)
	})
}

func TestDocumentUseCase_Get(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.Must(uuid.NewV7())
	strangerID := uuid.Must(uuid.NewV7())

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		docID := uuid.Must(uuid.NewV7())
		mockRepo.On("Get", ctx, docID).Return(nil, docDomain.ErrDocumentNotFound).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.Get(ctx, adminID, docID)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("Error_PrivateDocNonMember", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID)
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.Get(ctx, strangerID, doc.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("Success_PublicDocAnonymous", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID)
		doc.Privacy = docDomain.PublicDocument
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		got, err := uc.Get(ctx, uuid.Nil, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, got.ID)
	})
}

func TestDocumentUseCase_UpdateContent(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.Must(uuid.NewV7())
	readerID := uuid.Must(uuid.NewV7())
	newContent := json.RawMessage(`{"title":"updated"}`)

	t.Run("Error_EmptyContentBeforeStore", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.UpdateContent(ctx, adminID, uuid.Must(uuid.NewV7()), nil)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_ReadAccessCannotWrite", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: readerID, Access: docDomain.ReadAccess})
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.UpdateContent(ctx, readerID, doc.ID, newContent)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success_FullReplaceBumpsVersion", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID)
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(d *docDomain.Document) bool {
			return string(d.Content) == string(newContent)
		}), int64(1)).Return(nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		got, err := uc.UpdateContent(ctx, adminID, doc.ID, newContent)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Version)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_VersionConflictRetriesExhausted", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID)
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Times(3)
		mockRepo.On("Update", ctx, mock.Anything, int64(1)).
			Return(docDomain.ErrVersionConflict).Times(3)

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.UpdateContent(ctx, adminID, doc.ID, newContent)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

		mockRepo.AssertExpectations(t)
	})
}

func TestDocumentUseCase_UpdatePrivacy(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.Must(uuid.NewV7())
	writerID := uuid.Must(uuid.NewV7())

	t.Run("Error_UnknownPrivacy", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.UpdatePrivacy(ctx, adminID, uuid.Must(uuid.NewV7()), "internal")
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_WriteAccessIsNotEnough", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: writerID, Access: docDomain.WriteAccess})
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.UpdatePrivacy(ctx, writerID, doc.ID, "public")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("Success_AdminFlipsPrivacy", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID)
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(d *docDomain.Document) bool {
			return d.Privacy == docDomain.PublicDocument
		}), int64(1)).Return(nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		got, err := uc.UpdatePrivacy(ctx, adminID, doc.ID, "public")
		require.NoError(t, err)
		assert.Equal(t, docDomain.PublicDocument, got.Privacy)
	})
}

func TestDocumentUseCase_AddMember(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.Must(uuid.NewV7())
	readerID := uuid.Must(uuid.NewV7())
	targetID := uuid.Must(uuid.NewV7())

	t.Run("Error_UnknownAccessLevel", func(t *testing.T) {
		uc := newUseCase(&mockDocumentRepository{}, &mockUserDocumentRepository{})

		_, err := uc.AddMember(ctx, adminID, uuid.Must(uuid.NewV7()), targetID, "owner")
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_SelfGrantRejectedEvenForAdmin", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.AddMember(ctx, adminID, uuid.Must(uuid.NewV7()), adminID, "admin")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		mockRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_NonAdminActor", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: readerID, Access: docDomain.ReadAccess})
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.AddMember(ctx, readerID, doc.ID, targetID, "read")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("Success_NewMemberRegistersBackReference", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		mockUserDocRepo := &mockUserDocumentRepository{}
		doc := privateDoc(adminID)

		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(d *docDomain.Document) bool {
			access, isMember := d.MemberAccess(targetID)
			return isMember && access == docDomain.ReadAccess
		}), int64(1)).Return(nil).Once()
		mockUserDocRepo.On("Add", ctx, targetID, doc.ID).Return(nil).Once()

		uc := newUseCase(mockRepo, mockUserDocRepo)

		got, err := uc.AddMember(ctx, adminID, doc.ID, targetID, "read")
		require.NoError(t, err)
		assert.Len(t, got.Members, 2)

		mockUserDocRepo.AssertExpectations(t)
	})

	t.Run("Success_ExistingMemberUpdatedInPlace", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		mockUserDocRepo := &mockUserDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: targetID, Access: docDomain.ReadAccess})

		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(d *docDomain.Document) bool {
			access, _ := d.MemberAccess(targetID)
			return len(d.Members) == 2 && access == docDomain.WriteAccess
		}), int64(1)).Return(nil).Once()

		uc := newUseCase(mockRepo, mockUserDocRepo)

		_, err := uc.AddMember(ctx, adminID, doc.ID, targetID, "write")
		require.NoError(t, err)

		// Already a member, back-reference untouched
		mockUserDocRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentUseCase_RemoveMember(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.Must(uuid.NewV7())
	targetID := uuid.Must(uuid.NewV7())

	t.Run("Error_NonMemberTarget", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: uuid.Must(uuid.NewV7()), Access: docDomain.ReadAccess})
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		_, err := uc.RemoveMember(ctx, adminID, doc.ID, targetID)
		assert.ErrorIs(t, err, docDomain.ErrMemberNotFound)
	})

	t.Run("Error_LastMemberStays", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID)
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		// Another admin trying to empty the document entirely
		_, err := uc.RemoveMember(ctx, adminID, doc.ID, adminID)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Len(t, doc.Members, 1, "member list unchanged")
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success_RemovesMemberAndBackReference", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		mockUserDocRepo := &mockUserDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: targetID, Access: docDomain.WriteAccess})

		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(d *docDomain.Document) bool {
			_, isMember := d.MemberAccess(targetID)
			return !isMember && len(d.Members) == 1
		}), int64(1)).Return(nil).Once()
		mockUserDocRepo.On("Remove", ctx, targetID, doc.ID).Return(nil).Once()

		uc := newUseCase(mockRepo, mockUserDocRepo)

		got, err := uc.RemoveMember(ctx, adminID, doc.ID, targetID)
		require.NoError(t, err)
		assert.Len(t, got.Members, 1)

		mockUserDocRepo.AssertExpectations(t)
	})
}

func TestDocumentUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.Must(uuid.NewV7())
	memberID := uuid.Must(uuid.NewV7())

	t.Run("Error_NonAdmin", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: memberID, Access: docDomain.WriteAccess})
		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()

		uc := newUseCase(mockRepo, &mockUserDocumentRepository{})

		err := uc.Delete(ctx, memberID, doc.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Success_DeregistersEveryMember", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		mockUserDocRepo := &mockUserDocumentRepository{}
		doc := privateDoc(adminID, docDomain.Member{UserID: memberID, Access: docDomain.ReadAccess})

		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()
		mockRepo.On("Delete", ctx, doc.ID).Return(nil).Once()
		mockUserDocRepo.On("Remove", mock.Anything, adminID, doc.ID).Return(nil).Once()
		mockUserDocRepo.On("Remove", mock.Anything, memberID, doc.ID).Return(nil).Once()

		uc := newUseCase(mockRepo, mockUserDocRepo)

		require.NoError(t, uc.Delete(ctx, adminID, doc.ID))

		mockRepo.AssertExpectations(t)
		mockUserDocRepo.AssertExpectations(t)
	})

	t.Run("Success_BackReferenceFailureIsNotSurfaced", func(t *testing.T) {
		mockRepo := &mockDocumentRepository{}
		mockUserDocRepo := &mockUserDocumentRepository{}
		doc := privateDoc(adminID)

		mockRepo.On("Get", ctx, doc.ID).Return(doc, nil).Once()
		mockRepo.On("Delete", ctx, doc.ID).Return(nil).Once()
		mockUserDocRepo.On("Remove", mock.Anything, adminID, doc.ID).
			Return(apperrors.New("backing store unavailable")).Once()

		uc := newUseCase(mockRepo, mockUserDocRepo)

		assert.NoError(t, uc.Delete(ctx, adminID, doc.ID))
	})
}

// fakeDocumentStore is an in-memory DocumentRepository for scenario tests.
type fakeDocumentStore struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*docDomain.Document
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: make(map[uuid.UUID]*docDomain.Document)}
}

func (f *fakeDocumentStore) clone(doc *docDomain.Document) *docDomain.Document {
	copied := *doc
	copied.Members = append([]docDomain.Member(nil), doc.Members...)
	copied.Content = append(json.RawMessage(nil), doc.Content...)
	return &copied
}

func (f *fakeDocumentStore) Create(_ context.Context, doc *docDomain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.docs {
		if existing.Name == doc.Name {
			return docDomain.ErrDocumentAlreadyExists
		}
	}
	f.docs[doc.ID] = f.clone(doc)
	return nil
}

func (f *fakeDocumentStore) Get(_ context.Context, documentID uuid.UUID) (*docDomain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[documentID]
	if !ok {
		return nil, docDomain.ErrDocumentNotFound
	}
	return f.clone(doc), nil
}

func (f *fakeDocumentStore) Update(_ context.Context, doc *docDomain.Document, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.docs[doc.ID]
	if !ok || stored.Version != expectedVersion {
		return docDomain.ErrVersionConflict
	}
	updated := f.clone(doc)
	updated.Version = expectedVersion + 1
	f.docs[doc.ID] = updated
	return nil
}

func (f *fakeDocumentStore) Delete(_ context.Context, documentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, documentID)
	return nil
}

func (f *fakeDocumentStore) ListPublic(_ context.Context, _, _ int) ([]*docDomain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []*docDomain.Document
	for _, doc := range f.docs {
		if doc.Privacy == docDomain.PublicDocument {
			docs = append(docs, f.clone(doc))
		}
	}
	return docs, nil
}

// fakeUserDocumentStore is an in-memory UserDocumentRepository.
type fakeUserDocumentStore struct {
	mu   sync.Mutex
	refs map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeUserDocumentStore() *fakeUserDocumentStore {
	return &fakeUserDocumentStore{refs: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (f *fakeUserDocumentStore) Add(_ context.Context, userID, documentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refs[userID] == nil {
		f.refs[userID] = make(map[uuid.UUID]bool)
	}
	f.refs[userID][documentID] = true
	return nil
}

func (f *fakeUserDocumentStore) Remove(_ context.Context, userID, documentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refs[userID], documentID)
	return nil
}

func (f *fakeUserDocumentStore) ListByUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for id := range f.refs[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

// TestDocumentUseCase_SharingLifecycle walks a full collaboration scenario:
// owner A shares a private document with B step by step, raising B's access
// tier and finally making the document public.
func TestDocumentUseCase_SharingLifecycle(t *testing.T) {
	ctx := context.Background()
	userA := uuid.Must(uuid.NewV7())
	userB := uuid.Must(uuid.NewV7())

	uc := NewDocumentUseCase(&mockTxManager{}, newFakeDocumentStore(), newFakeUserDocumentStore(), testLogger())

	// A creates a private document.
	doc, err := uc.Create(ctx, userA, "team-notes", "private", json.RawMessage(`{"v":1}`))
	require.NoError(t, err)

	// B can neither read nor write it.
	_, err = uc.Get(ctx, userB, doc.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	_, err = uc.UpdateContent(ctx, userB, doc.ID, json.RawMessage(`{"v":2}`))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	// A grants B read access: B can read but still not write.
	_, err = uc.AddMember(ctx, userA, doc.ID, userB, "read")
	require.NoError(t, err)
	_, err = uc.Get(ctx, userB, doc.ID)
	assert.NoError(t, err)
	_, err = uc.UpdateContent(ctx, userB, doc.ID, json.RawMessage(`{"v":2}`))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	// A raises B to write access: B can now replace content.
	_, err = uc.AddMember(ctx, userA, doc.ID, userB, "write")
	require.NoError(t, err)
	updated, err := uc.UpdateContent(ctx, userB, doc.ID, json.RawMessage(`{"v":2}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(updated.Content))

	// B is not an admin: membership and privacy stay out of reach.
	_, err = uc.AddMember(ctx, userB, doc.ID, uuid.Must(uuid.NewV7()), "read")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	_, err = uc.UpdatePrivacy(ctx, userB, doc.ID, "public")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	// A makes the document public: anonymous readers get in, writes stay gated.
	_, err = uc.UpdatePrivacy(ctx, userA, doc.ID, "public")
	require.NoError(t, err)
	_, err = uc.Get(ctx, uuid.Nil, doc.ID)
	assert.NoError(t, err)
	_, err = uc.UpdateContent(ctx, uuid.Nil, doc.ID, json.RawMessage(`{"v":3}`))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	// A deletes the document; it is gone for everyone.
	require.NoError(t, uc.Delete(ctx, userA, doc.ID))
	_, err = uc.Get(ctx, userA, doc.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
