// Package repository provides data persistence implementations for tokens.
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

// PostgreSQLTokenRepository implements Token persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
// Every lookup filters on created_at so expired tokens are invisible even
// before the sweeper removes them.
type PostgreSQLTokenRepository struct {
	db  *sql.DB
	ttl time.Duration
}

// liveCutoff returns the oldest created_at still considered live.
func (p *PostgreSQLTokenRepository) liveCutoff() time.Time {
	return time.Now().UTC().Add(-p.ttl)
}

// Create inserts a new Token into the PostgreSQL database.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO tokens (id, value, type, user_id, throttle_date, throttle_counter, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.Value,
		token.Type,
		token.UserID,
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
func (p *PostgreSQLTokenRepository) GetByID(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, value, type, user_id, throttle_date, throttle_counter, created_at
			  FROM tokens WHERE id = $1 AND created_at > $2`

	return p.scanToken(querier.QueryRowContext(ctx, query, tokenID, p.liveCutoff()))
}

// GetByValue retrieves a live Token by exact value and type. The value column
// carries a unique index; matching is byte-exact, never partial.
func (p *PostgreSQLTokenRepository) GetByValue(
	ctx context.Context,
	value string,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, value, type, user_id, throttle_date, throttle_counter, created_at
			  FROM tokens WHERE value = $1 AND type = $2 AND created_at > $3`

	return p.scanToken(querier.QueryRowContext(ctx, query, value, tokenType, p.liveCutoff()))
}

// GetByUser retrieves the newest live Token for the given user and type.
func (p *PostgreSQLTokenRepository) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, value, type, user_id, throttle_date, throttle_counter, created_at
			  FROM tokens WHERE user_id = $1 AND type = $2 AND created_at > $3
			  ORDER BY created_at DESC LIMIT 1`

	return p.scanToken(querier.QueryRowContext(ctx, query, userID, tokenType, p.liveCutoff()))
}

// UpdateThrottle performs a compare-and-swap on the throttle state. The write
// only lands when the stored (date, counter) pair still equals the previously
// observed (expectedDate, expectedCounter); zero rows affected surfaces
// ErrThrottleConflict so the caller can re-read and retry.
func (p *PostgreSQLTokenRepository) UpdateThrottle(
	ctx context.Context,
	tokenID uuid.UUID,
	date time.Time,
	counter int,
	expectedDate time.Time,
	expectedCounter int,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE tokens
			  SET throttle_date = $1, throttle_counter = $2
			  WHERE id = $3 AND throttle_date = $4 AND throttle_counter = $5`

	result, err := querier.ExecContext(ctx, query, date, counter, tokenID, expectedDate, expectedCounter)
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
func (p *PostgreSQLTokenRepository) DeleteByUser(
	ctx context.Context,
	userID uuid.UUID,
	tokenType authDomain.TokenType,
) error {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = $1 AND type = $2`, userID, tokenType)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete tokens by user and type")
	}
	return nil
}

// DeleteAllByUser removes every token owned by the user. Idempotent.
func (p *PostgreSQLTokenRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete tokens by user")
	}
	return nil
}

// CountExpired counts tokens created before the cutoff.
func (p *PostgreSQLTokenRepository) CountExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE created_at <= $1`, before).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired tokens")
	}
	return count, nil
}

// DeleteExpired removes tokens created before the cutoff and returns the
// number of rows deleted.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE created_at <= $1`, before)
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
func (p *PostgreSQLTokenRepository) scanToken(row *sql.Row) (*authDomain.Token, error) {
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

// NewPostgreSQLTokenRepository creates a new PostgreSQL Token repository with
// the given absolute TTL.
func NewPostgreSQLTokenRepository(db *sql.DB, ttl time.Duration) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db, ttl: ttl}
}
