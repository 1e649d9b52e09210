package kvstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:kvstore_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM kv;
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v, "missing key must read as nil, not an error")
}

func TestSQLiteStore_SetGetOverwrite(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "feed", []byte("v1")))
	v, err := s.Get(ctx, "feed")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)

	require.NoError(t, s.Set(ctx, "feed", []byte("v2")))
	v, err = s.Get(ctx, "feed")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), v, "second set must overwrite")
}

func TestSQLiteStore_DeleteAndClear(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "b", []byte("2")))

	require.NoError(t, s.Delete(ctx, "a"))
	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, s.Clear(ctx))
	v, err = s.Get(ctx, "b")
	require.NoError(t, err)
	require.Nil(t, v)

	// deleting an absent key is a no-op
	require.NoError(t, s.Delete(ctx, "ghost"))
}
