package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/docshare/internal/database"
	apperrors "github.com/allisson/docshare/internal/errors"
)

// PostgreSQLUserDocumentRepository maintains the user-to-document membership
// back-reference for PostgreSQL. Rows mirror the members array stored inside
// each document so a user's document list is a single indexed lookup.
type PostgreSQLUserDocumentRepository struct {
	db *sql.DB
}

// Add registers a membership. Re-adding an existing pair is a no-op.
func (p *PostgreSQLUserDocumentRepository) Add(ctx context.Context, userID, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO user_documents (user_id, document_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id, document_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to add user document")
	}
	return nil
}

// Remove deregisters a membership. Removing a missing pair is not an error.
func (p *PostgreSQLUserDocumentRepository) Remove(ctx context.Context, userID, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM user_documents WHERE user_id = $1 AND document_id = $2`

	_, err := querier.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove user document")
	}
	return nil
}

// ListByUser returns the IDs of every document the user belongs to, oldest
// membership first.
func (p *PostgreSQLUserDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT document_id FROM user_documents WHERE user_id = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user documents")
	}
	defer func() { _ = rows.Close() }()

	return collectDocumentIDs(rows)
}

// collectDocumentIDs drains a single-column result set of document IDs.
func collectDocumentIDs(rows *sql.Rows) ([]uuid.UUID, error) {
	var documentIDs []uuid.UUID

	for rows.Next() {
		var documentID uuid.UUID
		if err := rows.Scan(&documentID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan document id")
		}
		documentIDs = append(documentIDs, documentID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user documents")
	}

	return documentIDs, nil
}

// NewPostgreSQLUserDocumentRepository creates a new PostgreSQL membership
// back-reference repository.
func NewPostgreSQLUserDocumentRepository(db *sql.DB) *PostgreSQLUserDocumentRepository {
	return &PostgreSQLUserDocumentRepository{db: db}
}
