// Package usecase implements business logic orchestration for document operations.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/docshare/internal/database"
	docDomain "github.com/allisson/docshare/internal/document/domain"
	apperrors "github.com/allisson/docshare/internal/errors"
)

// versionMaxRetries bounds the optimistic-concurrency retry loop on
// document writes. Each retry re-reads the document and re-evaluates the
// authorization gate against fresh state.
const versionMaxRetries = 3

// deleteFanOutLimit caps concurrent back-reference deregistrations during
// document deletion.
const deleteFanOutLimit = 8

// documentUseCase implements DocumentUseCase.
type documentUseCase struct {
	txManager    database.TxManager
	documentRepo DocumentRepository
	userDocRepo  UserDocumentRepository
	logger       *slog.Logger
}

// Create stores a new document with the creator as sole admin member.
func (d *documentUseCase) Create(
	ctx context.Context,
	actorID uuid.UUID,
	name, privacy string,
	content json.RawMessage,
) (*docDomain.Document, error) {
	if actorID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document name is required")
	}

	parsedPrivacy, err := docDomain.ParsePrivacy(privacy)
	if err != nil {
		return nil, err
	}

	if len(content) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document content is required")
	}
	if !json.Valid(content) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document content must be valid JSON")
	}

	doc := &docDomain.Document{
		ID:      uuid.Must(uuid.NewV7()),
		Name:    name,
		Privacy: parsedPrivacy,
		Content: content,
		Members: []docDomain.Member{{UserID: actorID, Access: docDomain.AdminAccess}},
		Version: 1,
	}

	// The document and the creator's back-reference land atomically.
	err = d.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := d.documentRepo.Create(ctx, doc); err != nil {
			return err
		}
		return d.userDocRepo.Add(ctx, actorID, doc.ID)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Get retrieves a document, gated by the retrieval policy.
func (d *documentUseCase) Get(ctx context.Context, actorID, documentID uuid.UUID) (*docDomain.Document, error) {
	doc, err := d.documentRepo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if !docDomain.CanRetrieve(actorID, doc) {
		return nil, apperrors.ErrUnauthorized
	}

	return doc, nil
}

// ListPublic returns public documents with pagination.
func (d *documentUseCase) ListPublic(ctx context.Context, offset, limit int) ([]*docDomain.Document, error) {
	return d.documentRepo.ListPublic(ctx, offset, limit)
}

// UpdateContent replaces the document content wholesale.
func (d *documentUseCase) UpdateContent(
	ctx context.Context,
	actorID, documentID uuid.UUID,
	content json.RawMessage,
) (*docDomain.Document, error) {
	if len(content) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document content is required")
	}
	if !json.Valid(content) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "document content must be valid JSON")
	}

	return d.updateWithRetry(ctx, documentID, func(doc *docDomain.Document) error {
		if !docDomain.CanUpdate(actorID, doc) {
			return apperrors.ErrUnauthorized
		}
		doc.Content = content
		return nil
	})
}

// UpdatePrivacy changes the document's privacy setting.
func (d *documentUseCase) UpdatePrivacy(
	ctx context.Context,
	actorID, documentID uuid.UUID,
	privacy string,
) (*docDomain.Document, error) {
	parsedPrivacy, err := docDomain.ParsePrivacy(privacy)
	if err != nil {
		return nil, err
	}

	return d.updateWithRetry(ctx, documentID, func(doc *docDomain.Document) error {
		if !docDomain.IsAdmin(actorID, doc) {
			return apperrors.ErrUnauthorized
		}
		doc.Privacy = parsedPrivacy
		return nil
	})
}

// AddMember grants or updates a member's access level.
func (d *documentUseCase) AddMember(
	ctx context.Context,
	actorID, documentID, targetID uuid.UUID,
	access string,
) (*docDomain.Document, error) {
	parsedAccess, err := docDomain.ParseAccessLevel(access)
	if err != nil {
		return nil, err
	}
	if targetID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "target user id is required")
	}

	// Admins cannot change their own tier; another admin has to do it.
	if targetID == actorID {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "cannot change own access level")
	}

	var appended bool
	doc, err := d.updateWithRetry(ctx, documentID, func(doc *docDomain.Document) error {
		if !docDomain.IsAdmin(actorID, doc) {
			return apperrors.ErrUnauthorized
		}
		appended = !doc.SetMember(targetID, parsedAccess)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// New members get a back-reference; access updates don't need one.
	if appended {
		if err := d.userDocRepo.Add(ctx, targetID, documentID); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// RemoveMember revokes a member's access.
func (d *documentUseCase) RemoveMember(
	ctx context.Context,
	actorID, documentID, targetID uuid.UUID,
) (*docDomain.Document, error) {
	if targetID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "target user id is required")
	}

	doc, err := d.updateWithRetry(ctx, documentID, func(doc *docDomain.Document) error {
		if !docDomain.IsAdmin(actorID, doc) {
			return apperrors.ErrUnauthorized
		}
		if _, isMember := doc.MemberAccess(targetID); !isMember {
			return docDomain.ErrMemberNotFound
		}
		if len(doc.Members) == 1 {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "cannot remove the last member")
		}
		doc.RemoveMember(targetID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := d.userDocRepo.Remove(ctx, targetID, documentID); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes the document and deregisters every former member's
// back-reference.
func (d *documentUseCase) Delete(ctx context.Context, actorID, documentID uuid.UUID) error {
	doc, err := d.documentRepo.Get(ctx, documentID)
	if err != nil {
		return err
	}

	if !docDomain.IsAdmin(actorID, doc) {
		return apperrors.ErrUnauthorized
	}

	if err := d.documentRepo.Delete(ctx, documentID); err != nil {
		return err
	}

	// Back-reference cleanup is best-effort: the document is already gone
	// and the lists are eventually consistent, so failures are logged and
	// never surfaced to the caller.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(deleteFanOutLimit)

	for _, member := range doc.Members {
		group.Go(func() error {
			if err := d.userDocRepo.Remove(groupCtx, member.UserID, documentID); err != nil {
				d.logger.Warn("failed to deregister document back-reference",
					slog.String("user_id", member.UserID.String()),
					slog.String("document_id", documentID.String()),
					slog.Any("error", err),
				)
			}
			return nil
		})
	}

	_ = group.Wait() // goroutines always return nil, failures are logged above

	return nil
}

// updateWithRetry runs the read-mutate-write cycle under optimistic
// concurrency. mutate sees the freshly read document and may reject the
// operation; a version conflict on write re-reads and retries a bounded
// number of times before surfacing the conflict.
func (d *documentUseCase) updateWithRetry(
	ctx context.Context,
	documentID uuid.UUID,
	mutate func(doc *docDomain.Document) error,
) (*docDomain.Document, error) {
	for attempt := 0; attempt < versionMaxRetries; attempt++ {
		doc, err := d.documentRepo.Get(ctx, documentID)
		if err != nil {
			return nil, err
		}

		expectedVersion := doc.Version
		if err := mutate(doc); err != nil {
			return nil, err
		}

		err = d.documentRepo.Update(ctx, doc, expectedVersion)
		if err != nil {
			if errors.Is(err, docDomain.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		doc.Version = expectedVersion + 1
		return doc, nil
	}

	return nil, docDomain.ErrVersionConflict
}

// NewDocumentUseCase creates a new DocumentUseCase with the provided dependencies.
func NewDocumentUseCase(
	txManager database.TxManager,
	documentRepo DocumentRepository,
	userDocRepo UserDocumentRepository,
	logger *slog.Logger,
) DocumentUseCase {
	return &documentUseCase{
		txManager:    txManager,
		documentRepo: documentRepo,
		userDocRepo:  userDocRepo,
		logger:       logger,
	}
}
