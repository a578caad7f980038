package storage

import (
	"context"
	"errors"
)

// Store is the persistent key-value contract the shopping stores write
// through to. Consumers define this interface, not the backends.
type Store interface {
	// Get returns the value under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
