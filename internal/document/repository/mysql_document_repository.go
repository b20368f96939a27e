package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docshare/internal/database"
	docDomain "github.com/allisson/docshare/internal/document/domain"
	apperrors "github.com/allisson/docshare/internal/errors"
)

// MySQLDocumentRepository implements Document persistence for MySQL.
// Uses BINARY(16) for UUIDs and JSON columns for content and members, with
// transaction support via database.GetTx().
type MySQLDocumentRepository struct {
	db *sql.DB
}

// Create inserts a new Document. A name collision surfaces
// ErrDocumentAlreadyExists.
func (m *MySQLDocumentRepository) Create(ctx context.Context, doc *docDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	id, err := doc.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	members, err := json.Marshal(doc.Members)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document members")
	}

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (id, name, privacy, content, members, version, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		doc.Name,
		doc.Privacy,
		[]byte(doc.Content),
		members,
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return docDomain.ErrDocumentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Get retrieves a Document by ID. Returns ErrDocumentNotFound if not found.
func (m *MySQLDocumentRepository) Get(ctx context.Context, documentID uuid.UUID) (*docDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := documentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal document id")
	}

	query := `SELECT id, name, privacy, content, members, version, created_at, updated_at
			  FROM documents WHERE id = ?`

	return scanDocument(querier.QueryRowContext(ctx, query, id))
}

// Update persists the document when its stored version still equals
// expectedVersion, bumping the version by one. Zero rows affected surfaces
// ErrVersionConflict so the caller can re-read and retry.
func (m *MySQLDocumentRepository) Update(
	ctx context.Context,
	doc *docDomain.Document,
	expectedVersion int64,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := doc.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	members, err := json.Marshal(doc.Members)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document members")
	}

	query := `UPDATE documents
			  SET privacy = ?, content = ?, members = ?, version = version + 1, updated_at = ?
			  WHERE id = ? AND version = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		doc.Privacy,
		[]byte(doc.Content),
		members,
		time.Now().UTC(),
		id,
		expectedVersion,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update document")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rowsAffected == 0 {
		return docDomain.ErrVersionConflict
	}

	return nil
}

// Delete removes the document. Deleting a missing document is not an error.
func (m *MySQLDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := documentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document id")
	}

	_, err = querier.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	return nil
}

// ListPublic returns public documents ordered by creation time, newest first.
func (m *MySQLDocumentRepository) ListPublic(
	ctx context.Context,
	offset, limit int,
) ([]*docDomain.Document, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, privacy, content, members, version, created_at, updated_at
			  FROM documents WHERE privacy = ?
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, docDomain.PublicDocument, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list public documents")
	}
	defer func() { _ = rows.Close() }()

	return collectDocuments(rows)
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint
// violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

// NewMySQLDocumentRepository creates a new MySQL Document repository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}
