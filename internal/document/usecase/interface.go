// Package usecase defines business logic interfaces for document operations.
package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	docDomain "github.com/allisson/docshare/internal/document/domain"
)

// DocumentRepository defines persistence operations for documents.
// Implementations must support transaction-aware operations via context
// propagation.
type DocumentRepository interface {
	// Create stores a new document. A name collision surfaces
	// ErrDocumentAlreadyExists.
	Create(ctx context.Context, doc *docDomain.Document) error

	// Get retrieves a document by ID. Returns ErrDocumentNotFound if not found.
	Get(ctx context.Context, documentID uuid.UUID) (*docDomain.Document, error)

	// Update persists the document when its stored version still equals
	// expectedVersion, bumping the version by one. Zero rows affected
	// surfaces ErrVersionConflict.
	Update(ctx context.Context, doc *docDomain.Document, expectedVersion int64) error

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, documentID uuid.UUID) error

	// ListPublic returns public documents ordered by creation time, newest
	// first, with offset/limit pagination.
	ListPublic(ctx context.Context, offset, limit int) ([]*docDomain.Document, error)
}

// UserDocumentRepository maintains the per-user back-reference list of
// document IDs. Add and Remove are idempotent; the list is eventually
// consistent with the documents' member lists.
type UserDocumentRepository interface {
	Add(ctx context.Context, userID, documentID uuid.UUID) error
	Remove(ctx context.Context, userID, documentID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// DocumentUseCase defines business logic operations for shared documents.
// Every operation is terminal on its first rejection and validates input
// before touching the store. uuid.Nil identifies an anonymous caller.
type DocumentUseCase interface {
	// Create stores a new document; the creator becomes the sole member with
	// admin access and the back-reference is registered in the same
	// transaction. Anonymous callers are rejected.
	Create(
		ctx context.Context,
		actorID uuid.UUID,
		name, privacy string,
		content json.RawMessage,
	) (*docDomain.Document, error)

	// Get retrieves a document, gated by the retrieval policy. Anonymous
	// callers may read public documents.
	Get(ctx context.Context, actorID, documentID uuid.UUID) (*docDomain.Document, error)

	// ListPublic returns public documents with pagination. No gate: public
	// documents are world-readable.
	ListPublic(ctx context.Context, offset, limit int) ([]*docDomain.Document, error)

	// UpdateContent replaces the document content wholesale. Requires write
	// access. The replace is idempotent, never a merge.
	UpdateContent(
		ctx context.Context,
		actorID, documentID uuid.UUID,
		content json.RawMessage,
	) (*docDomain.Document, error)

	// UpdatePrivacy changes the document's privacy. Requires admin access.
	UpdatePrivacy(ctx context.Context, actorID, documentID uuid.UUID, privacy string) (*docDomain.Document, error)

	// AddMember grants or updates a member's access. The access argument is
	// the level name ("read", "write", "admin"). Requires admin access;
	// self-grants are rejected regardless of the actor's current access.
	AddMember(
		ctx context.Context,
		actorID, documentID, targetID uuid.UUID,
		access string,
	) (*docDomain.Document, error)

	// RemoveMember revokes a member's access. Requires admin access. The
	// last member can never be removed; a non-member target is NotFound.
	RemoveMember(ctx context.Context, actorID, documentID, targetID uuid.UUID) (*docDomain.Document, error)

	// Delete removes the document and deregisters it from every former
	// member's back-reference list. Requires admin access.
	Delete(ctx context.Context, actorID, documentID uuid.UUID) error
}
