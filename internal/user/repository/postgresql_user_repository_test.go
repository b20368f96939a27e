package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/docshare/internal/testutil"
	"github.com/allisson/docshare/internal/user/domain"
)

func newTestUser(username, email string) *domain.User {
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		Email:        email,
		PasswordHash: "argon2id-test-hash",
	}
}

func TestPostgreSQLUserRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user := newTestUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))

	t.Run("GetByID", func(t *testing.T) {
		found, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "alice", found.Username)
		assert.Equal(t, "alice@example.com", found.Email)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
		assert.False(t, found.Verified)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("GetByEmail_CaseInsensitive", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "Alice@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("GetByEmail_NotFound", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := newTestUser("alice2", "alice@example.com")
		assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrUserAlreadyExists)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		dup := newTestUser("alice", "alice2@example.com")
		assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrUserAlreadyExists)
	})
}

func TestPostgreSQLUserRepository_Update(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user := newTestUser("bob", "bob@example.com")
	require.NoError(t, repo.Create(ctx, user))

	user.Username = "bobby"
	user.Image = "avatar.png"
	user.Verified = true
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bobby", found.Username)
	assert.Equal(t, "avatar.png", found.Image)
	assert.True(t, found.Verified)

	t.Run("MissingUser", func(t *testing.T) {
		ghost := newTestUser("ghost", "ghost@example.com")
		assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_Delete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLUserRepository(db)
	ctx := context.Background()

	user := newTestUser("carol", "carol@example.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Deleting an already deleted user is a no-op
	assert.NoError(t, repo.Delete(ctx, user.ID))
}
