package port

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore persists opaque values under string keys.
// Get returns ErrKeyNotFound for a key that was never set or was deleted.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KeyWatcher reports changes to a key made by any writer, including other
// processes sharing the same storage. Watch blocks until ctx is done.
type KeyWatcher interface {
	Watch(ctx context.Context, key string, onChange func()) error
}
