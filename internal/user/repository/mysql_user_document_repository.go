package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/docshare/internal/database"
	apperrors "github.com/allisson/docshare/internal/errors"
)

// MySQLUserDocumentRepository maintains the user-to-document membership
// back-reference for MySQL. Rows mirror the members array stored inside each
// document so a user's document list is a single indexed lookup.
type MySQLUserDocumentRepository struct {
	db *sql.DB
}

// Add registers a membership. Re-adding an existing pair is a no-op.
func (m *MySQLUserDocumentRepository) Add(ctx context.Context, userID, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	uid, did, err := marshalPair(userID, documentID)
	if err != nil {
		return err
	}

	query := `INSERT IGNORE INTO user_documents (user_id, document_id) VALUES (?, ?)`

	_, err = querier.ExecContext(ctx, query, uid, did)
	if err != nil {
		return apperrors.Wrap(err, "failed to add user document")
	}
	return nil
}

// Remove deregisters a membership. Removing a missing pair is not an error.
func (m *MySQLUserDocumentRepository) Remove(ctx context.Context, userID, documentID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	uid, did, err := marshalPair(userID, documentID)
	if err != nil {
		return err
	}

	query := `DELETE FROM user_documents WHERE user_id = ? AND document_id = ?`

	_, err = querier.ExecContext(ctx, query, uid, did)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove user document")
	}
	return nil
}

// ListByUser returns the IDs of every document the user belongs to, oldest
// membership first.
func (m *MySQLUserDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT document_id FROM user_documents WHERE user_id = ? ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list user documents")
	}
	defer func() { _ = rows.Close() }()

	return collectDocumentIDs(rows)
}

// marshalPair converts a membership pair to the BINARY(16) representation.
func marshalPair(userID, documentID uuid.UUID) ([]byte, []byte, error) {
	uid, err := userID.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal user id")
	}
	did, err := documentID.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal document id")
	}
	return uid, did, nil
}

// NewMySQLUserDocumentRepository creates a new MySQL membership back-reference
// repository.
func NewMySQLUserDocumentRepository(db *sql.DB) *MySQLUserDocumentRepository {
	return &MySQLUserDocumentRepository{db: db}
}
