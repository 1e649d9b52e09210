// Package kvstore provides the durable key/value store the notification
// feed and session bookkeeping serialize into.
package kvstore

import "context"

// Store is the persistence port for opaque payloads. Get returns (nil, nil)
// for a missing key so callers can distinguish "absent" from a read failure.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
