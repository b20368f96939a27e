package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/docshare/internal/auth/domain"
	"github.com/allisson/docshare/internal/database"
	apperrors "github.com/allisson/docshare/internal/errors"
)

// MySQLTokenRepository implements Token persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
// Every lookup filters on created_at so expired tokens are invisible even
// before the sweeper removes them.
type MySQLTokenRepository struct {
	db  *sql.DB
	ttl time.Duration
}

// liveCutoff returns the oldest created_at still considered live.
func (m *MySQLTokenRepository) liveCutoff() time.Time {
	return time.Now().UTC().Add(-m.ttl)
}

// Create inserts a new Token into the MySQL database using BINARY(16) for UUIDs.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO tokens (id, value, type, user_id, throttle_date, throttle_counter, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	userID, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.Value,
		token.Type,
		userID,
		token.ThrottleDate,
		token.ThrottleCounter,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByID retrieves a live Token by ID. Returns ErrTokenNotFound if the token
// doesn't exist or has expired.
func (m *MySQLTokenRepository) GetByID(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `SELECT id, value, type, user_id, throttle_date, throttle_counter, created_at
			  FROM tokens WHERE id = ? AND created_at > ?`

	return m.scanToken(querier.QueryRowContext(ctx, query, id, m.liveCutoff()))
}

// GetByValue retrieves a live Token by exact value and type. The value column
// carries a unique index; matching is byte-exact, never partial.
func (m *MySQLTokenRepository) GetByValue(
	ctx context.Context,
	value string,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, value, type, user_id, throttle_date, throttle_counter, created_at
			  FROM tokens WHERE value = ? AND type = ? AND created_at > ?`

	return m.scanToken(querier.QueryRowContext(ctx, query, value, tokenType, m.liveCutoff()))
}

// GetByUser retrieves the newest live Token for the given user and type.
func (m *MySQLTokenRepository) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT id, value, type, user_id, throttle_date, throttle_counter, created_at
			  FROM tokens WHERE user_id = ? AND type = ? AND created_at > ?
			  ORDER BY created_at DESC LIMIT 1`

	return m.scanToken(querier.QueryRowContext(ctx, query, id, tokenType, m.liveCutoff()))
}

// UpdateThrottle performs a compare-and-swap on the throttle state. The write
// only lands when the stored (date, counter) pair still equals the previously
// observed (expectedDate, expectedCounter); zero rows affected surfaces
// ErrThrottleConflict so the caller can re-read and retry.
func (m *MySQLTokenRepository) UpdateThrottle(
	ctx context.Context,
	tokenID uuid.UUID,
	date time.Time,
	counter int,
	expectedDate time.Time,
	expectedCounter int,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	query := `UPDATE tokens
			  SET throttle_date = ?, throttle_counter = ?
			  WHERE id = ? AND throttle_date = ? AND throttle_counter = ?`

	result, err := querier.ExecContext(ctx, query, date, counter, id, expectedDate, expectedCounter)
	if err != nil {
		return apperrors.Wrap(err, "failed to update token throttle")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rowsAffected == 0 {
		return authDomain.ErrThrottleConflict
	}

	return nil
}

// DeleteByUser removes the user's tokens of the given type. Idempotent.
func (m *MySQLTokenRepository) DeleteByUser(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = ? AND type = ?`, id, tokenType)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete tokens by user and type")
	}
	return nil
}

// DeleteAllByUser removes every token owned by the user. Idempotent.
func (m *MySQLTokenRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete tokens by user")
	}
	return nil
}

// CountExpired counts tokens created before the cutoff.
func (m *MySQLTokenRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE created_at <= ?`, before).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}
	return count, nil
}

// DeleteExpired removes tokens created before the cutoff and returns the
// number of rows deleted.
func (m *MySQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE created_at <= ?`, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return rowsAffected, nil
}

// scanToken maps a single row to a Token, translating sql.ErrNoRows to the
// domain's typed absence error.
func (m *MySQLTokenRepository) scanToken(row *sql.Row) (*authDomain.Token, error) {
	var token authDomain.Token

	err := row.Scan(
		&token.ID,
		&token.Value,
		&token.Type,
		&token.UserID,
		&token.ThrottleDate,
		&token.ThrottleCounter,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token")
	}

	return &token, nil
}

// NewMySQLTokenRepository creates a new MySQL Token repository with the given
// absolute TTL.
func NewMySQLTokenRepository(db *sql.DB, ttl time.Duration) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db, ttl: ttl}
}
