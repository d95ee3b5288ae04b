package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"chat-relay/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestUserRepository(t *testing.T) *SQLiteUserRepository {
	t.Helper()
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)

	repo, err := NewSQLiteUserRepository(ctx, conn)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteUserRepository_CreateAndFind(t *testing.T) {
	repo := setupTestUserRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice@example.com", "hash-1")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Minute)

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash-1", found.HashedPassword)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
}

func TestSQLiteUserRepository_EmailIsNormalized(t *testing.T) {
	repo := setupTestUserRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "  Bob@Example.COM ", "hash")
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", found.Email)
}

func TestSQLiteUserRepository_DuplicateEmail(t *testing.T) {
	repo := setupTestUserRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "carol@example.com", "hash")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "CAROL@example.com", "other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserExists))

	var repoErr *UserRepositoryError
	require.True(t, errors.As(err, &repoErr))
	assert.Equal(t, "create_user", repoErr.Operation)
}

func TestSQLiteUserRepository_NotFound(t *testing.T) {
	repo := setupTestUserRepository(t)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.Contains(t, err.Error(), "nobody@example.com")
}

func TestSQLiteUserRepository_SchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")

	conn, err := db.OpenSQLite(ctx, path)
	require.NoError(t, err)
	repo, err := NewSQLiteUserRepository(ctx, conn)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "dave@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	conn, err = db.OpenSQLite(ctx, path)
	require.NoError(t, err)
	repo, err = NewSQLiteUserRepository(ctx, conn)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.FindByEmail(ctx, "dave@example.com")
	assert.NoError(t, err)
	assert.NoError(t, repo.Ping(ctx))
}

func TestUserRepositoryError(t *testing.T) {
	tests := []struct {
		name string
		err  *UserRepositoryError
		want string
	}{
		{
			name: "message wins",
			err:  NewUserRepositoryError("op", "a@b.c", errors.New("x"), "custom"),
			want: "custom",
		},
		{
			name: "operation and email",
			err:  NewUserRepositoryError("find_user", "a@b.c", ErrUserNotFound, ""),
			want: "find_user (user: a@b.c): user not found",
		},
		{
			name: "no cause",
			err:  NewUserRepositoryError("op", "", nil, ""),
			want: "op: unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
