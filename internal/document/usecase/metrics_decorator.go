package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	docDomain "github.com/allisson/docshare/internal/document/domain"
	"github.com/allisson/docshare/internal/metrics"
)

// documentUseCaseWithMetrics decorates DocumentUseCase with metrics instrumentation.
type documentUseCaseWithMetrics struct {
	next    DocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewDocumentUseCaseWithMetrics wraps a DocumentUseCase with metrics recording.
func NewDocumentUseCaseWithMetrics(useCase DocumentUseCase, m metrics.BusinessMetrics) DocumentUseCase {
	return &documentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration for a completed call.
func (d *documentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "document", operation, status)
	d.metrics.RecordDuration(ctx, "document", operation, time.Since(start), status)
}

// Create records metrics for document creation operations.
func (d *documentUseCaseWithMetrics) Create(
	ctx context.Context,
	actorID uuid.UUID,
	name, privacy string,
	content json.RawMessage,
) (*docDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Create(ctx, actorID, name, privacy, content)
	d.record(ctx, "document_create", start, err)
	return doc, err
}

// Get records metrics for document retrieval operations.
func (d *documentUseCaseWithMetrics) Get(
	ctx context.Context,
	actorID, documentID uuid.UUID,
) (*docDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.Get(ctx, actorID, documentID)
	d.record(ctx, "document_get", start, err)
	return doc, err
}

// ListPublic records metrics for public listing operations.
func (d *documentUseCaseWithMetrics) ListPublic(
	ctx context.Context,
	offset, limit int,
) ([]*docDomain.Document, error) {
	start := time.Now()
	docs, err := d.next.ListPublic(ctx, offset, limit)
	d.record(ctx, "document_list_public", start, err)
	return docs, err
}

// UpdateContent records metrics for content replacement operations.
func (d *documentUseCaseWithMetrics) UpdateContent(
	ctx context.Context,
	actorID, documentID uuid.UUID,
	content json.RawMessage,
) (*docDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.UpdateContent(ctx, actorID, documentID, content)
	d.record(ctx, "document_update_content", start, err)
	return doc, err
}

// UpdatePrivacy records metrics for privacy change operations.
func (d *documentUseCaseWithMetrics) UpdatePrivacy(
	ctx context.Context,
	actorID, documentID uuid.UUID,
	privacy string,
) (*docDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.UpdatePrivacy(ctx, actorID, documentID, privacy)
	d.record(ctx, "document_update_privacy", start, err)
	return doc, err
}

// AddMember records metrics for member grant operations.
func (d *documentUseCaseWithMetrics) AddMember(
	ctx context.Context,
	actorID, documentID, targetID uuid.UUID,
	access string,
) (*docDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.AddMember(ctx, actorID, documentID, targetID, access)
	d.record(ctx, "document_add_member", start, err)
	return doc, err
}

// RemoveMember records metrics for member revocation operations.
func (d *documentUseCaseWithMetrics) RemoveMember(
	ctx context.Context,
	actorID, documentID, targetID uuid.UUID,
) (*docDomain.Document, error) {
	start := time.Now()
	doc, err := d.next.RemoveMember(ctx, actorID, documentID, targetID)
	d.record(ctx, "document_remove_member", start, err)
	return doc, err
}

// Delete records metrics for document deletion operations.
func (d *documentUseCaseWithMetrics) Delete(ctx context.Context, actorID, documentID uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, actorID, documentID)
	d.record(ctx, "document_delete", start, err)
	return err
}
