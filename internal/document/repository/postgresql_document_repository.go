// Package repository provides data persistence implementations for documents.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/docshare/internal/database"
	docDomain "github.com/allisson/docshare/internal/document/domain"
	apperrors "github.com/allisson/docshare/internal/errors"
)

// PostgreSQLDocumentRepository implements Document persistence for PostgreSQL.
// Uses native UUID types and JSONB columns for content and members, with
// transaction support via database.GetTx().
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// Create inserts a new Document. A name collision surfaces
// ErrDocumentAlreadyExists.
func (p *PostgreSQLDocumentRepository) Create(ctx context.Context, doc *docDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	members, err := json.Marshal(doc.Members)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document members")
	}

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (id, name, privacy, content, members, version, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Name,
		doc.Privacy,
		[]byte(doc.Content),
		members,
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return docDomain.ErrDocumentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create document")
	}
	return nil
}

// Get retrieves a Document by ID. Returns ErrDocumentNotFound if not found.
func (p *PostgreSQLDocumentRepository) Get(ctx context.Context, documentID uuid.UUID) (*docDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, privacy, content, members, version, created_at, updated_at
			  FROM documents WHERE id = $1`

	return scanDocument(querier.QueryRowContext(ctx, query, documentID))
}

// Update persists the document when its stored version still equals
// expectedVersion, bumping the version by one. Zero rows affected surfaces
// ErrVersionConflict so the caller can re-read and retry.
func (p *PostgreSQLDocumentRepository) Update(
	ctx context.Context,
	doc *docDomain.Document,
	expectedVersion int64,
) error {
	querier := database.GetTx(ctx, p.db)

	members, err := json.Marshal(doc.Members)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal document members")
	}

	query := `UPDATE documents
			  SET privacy = $1, content = $2, members = $3, version = version + 1, updated_at = $4
			  WHERE id = $5 AND version = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		doc.Privacy,
		[]byte(doc.Content),
		members,
		time.Now().UTC(),
		doc.ID,
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
func (p *PostgreSQLDocumentRepository) Delete(ctx context.Context, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete document")
	}
	return nil
}

// ListPublic returns public documents ordered by creation time, newest first.
func (p *PostgreSQLDocumentRepository) ListPublic(
	ctx context.Context,
	offset, limit int,
) ([]*docDomain.Document, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, privacy, content, members, version, created_at, updated_at
			  FROM documents WHERE privacy = $1
			  ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, docDomain.PublicDocument, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list public documents")
	}
	defer func() { _ = rows.Close() }()

	return collectDocuments(rows)
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// scanDocument maps a single row to a Document, translating sql.ErrNoRows to
// the domain's typed absence error.
func scanDocument(row *sql.Row) (*docDomain.Document, error) {
	var (
		doc     docDomain.Document
		content []byte
		members []byte
	)

	err := row.Scan(
		&doc.ID,
		&doc.Name,
		&doc.Privacy,
		&content,
		&members,
		&doc.Version,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docDomain.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get document")
	}

	doc.Content = json.RawMessage(content)
	if err := json.Unmarshal(members, &doc.Members); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal document members")
	}

	return &doc, nil
}

// collectDocuments drains a multi-row result set into documents.
func collectDocuments(rows *sql.Rows) ([]*docDomain.Document, error) {
	var docs []*docDomain.Document

	for rows.Next() {
		var (
			doc     docDomain.Document
			content []byte
			members []byte
		)

		err := rows.Scan(
			&doc.ID,
			&doc.Name,
			&doc.Privacy,
			&content,
			&members,
			&doc.Version,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document")
		}

		doc.Content = json.RawMessage(content)
		if err := json.Unmarshal(members, &doc.Members); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal document members")
		}

		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate documents")
	}

	return docs, nil
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQL Document repository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}
