package notifications

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/moneta-app/moneta/internal/kvstore"
	"github.com/moneta-app/moneta/internal/logging"
)

func setupKV(t *testing.T) kvstore.Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return kvstore.NewSQLiteStore(db)
}

func newLog(t *testing.T) (*Log, kvstore.Store) {
	t.Helper()
	kv := setupKV(t)
	return NewLog(kv, logging.NewSlogLogger(slog.Default())), kv
}

func record(id, title string) Record {
	return Record{
		ID:        id,
		Title:     title,
		Message:   "Rs. 100.00",
		Type:      TypeReminder,
		CreatedAt: time.Now().UTC(),
	}
}

func TestLog_AppendNewestFirst(t *testing.T) {
	l, _ := newLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record("1", "first")))
	require.NoError(t, l.Append(ctx, record("2", "second")))

	records := l.ListAll(ctx)
	require.Len(t, records, 2)
	require.Equal(t, "2", records[0].ID, "newest entry first")
	require.Equal(t, "1", records[1].ID)
}

func TestLog_SurvivesRestart(t *testing.T) {
	l, kv := newLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record("1", "persisted")))

	// a fresh Log over the same store sees the same feed
	reopened := NewLog(kv, logging.NewSlogLogger(slog.Default()))
	records := reopened.ListAll(ctx)
	require.Len(t, records, 1)
	require.Equal(t, "persisted", records[0].Title)
}

func TestLog_MalformedStoredDataDegradesToEmpty(t *testing.T) {
	l, kv := newLog(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "notification_feed", []byte("{not json")))

	require.Empty(t, l.ListAll(ctx))
	require.False(t, l.HasUnread(ctx))

	// the log recovers on the next write
	require.NoError(t, l.Append(ctx, record("1", "fresh")))
	require.Len(t, l.ListAll(ctx), 1)
}

func TestLog_MarkRead(t *testing.T) {
	l, _ := newLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record("1", "a")))
	require.NoError(t, l.Append(ctx, record("2", "b")))
	require.True(t, l.HasUnread(ctx))
	require.Equal(t, 2, l.UnreadCount(ctx))

	require.NoError(t, l.MarkRead(ctx, "1"))

	records := l.ListAll(ctx)
	require.True(t, records[1].IsRead, "record 1 read")
	require.False(t, records[0].IsRead, "record 2 untouched")
	require.Equal(t, 1, l.UnreadCount(ctx))

	// unknown id is a no-op success
	require.NoError(t, l.MarkRead(ctx, "ghost"))
}

func TestLog_RemoveAndRemoveAll(t *testing.T) {
	l, _ := newLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record("1", "a")))
	require.NoError(t, l.Append(ctx, record("2", "b")))

	require.NoError(t, l.Remove(ctx, "1"))
	records := l.ListAll(ctx)
	require.Len(t, records, 1)
	require.Equal(t, "2", records[0].ID)

	require.NoError(t, l.Remove(ctx, "ghost"))

	require.NoError(t, l.RemoveAll(ctx))
	require.Empty(t, l.ListAll(ctx))
	require.False(t, l.HasUnread(ctx))
}
