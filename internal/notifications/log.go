package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/kvstore"
	"github.com/moneta-app/moneta/internal/logging"
)

// feedKey is where the serialized feed lives in the key/value store.
const feedKey = "notification_feed"

// Log is the persisted, newest-first notification feed. Every mutation
// rewrites the full serialized sequence before returning, so the feed
// survives process restarts. Mutations serialize through a mutex; readers
// never observe a half-written feed because the kv write is a single upsert.
type Log struct {
	mu  sync.Mutex
	kv  kvstore.Store
	log logging.Logger
}

func NewLog(kv kvstore.Store, log logging.Logger) *Log {
	return &Log{kv: kv, log: log.With("component", "notifications")}
}

// load reads the stored feed. Missing or malformed stored data degrades to
// an empty feed rather than an error.
func (l *Log) load(ctx context.Context) []Record {
	data, err := l.kv.Get(ctx, feedKey)
	if err != nil {
		l.log.Warn(ctx, "failed to read notification feed, treating as empty", "err", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		l.log.Warn(ctx, "malformed notification feed, treating as empty", "err", err)
		return nil
	}
	return records
}

func (l *Log) save(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: marshal notification feed: %w", common.ErrStorage, err)
	}
	if err := l.kv.Set(ctx, feedKey, data); err != nil {
		return fmt.Errorf("%w: persist notification feed: %w", common.ErrStorage, err)
	}
	return nil
}

// Append inserts r at the head of the feed and persists it.
func (l *Log) Append(ctx context.Context, r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := append([]Record{r}, l.load(ctx)...)
	return l.save(ctx, records)
}

// MarkRead flips the matching record to read. Unknown ids are a no-op.
func (l *Log) MarkRead(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load(ctx)
	changed := false
	for i := range records {
		if records[i].ID == id && !records[i].IsRead {
			records[i].IsRead = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return l.save(ctx, records)
}

// Remove deletes the matching record. Unknown ids are a no-op.
func (l *Log) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.load(ctx)
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return l.save(ctx, kept)
}

// RemoveAll clears the feed.
func (l *Log) RemoveAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.save(ctx, []Record{})
}

// ListAll returns the feed newest-first.
func (l *Log) ListAll(ctx context.Context) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// HasUnread reports whether any record is unread.
func (l *Log) HasUnread(ctx context.Context) bool {
	return l.UnreadCount(ctx) > 0
}

// UnreadCount returns the number of unread records.
func (l *Log) UnreadCount(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, r := range l.load(ctx) {
		if !r.IsRead {
			n++
		}
	}
	return n
}
