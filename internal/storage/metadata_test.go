package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadata_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

func TestMetadata_SetGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteMetadataRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))

	got, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), got)
}

func TestMetadata_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteMetadataRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, "token", []byte("old")))
	require.NoError(t, repo.Set(ctx, "token", []byte("new")))

	got, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}

func TestMetadata_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteMetadataRepository(setupDB(t))

	got, err := repo.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMetadata_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteMetadataRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))
	require.NoError(t, repo.Delete(ctx, "token"))

	got, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMetadata_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteMetadataRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))
	require.NoError(t, repo.Set(ctx, "email", []byte("a@b.c")))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"token", "email"} {
		got, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, got, "key %q should be gone", key)
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, "file:open_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteMetadataRepository(db)
	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))
}
