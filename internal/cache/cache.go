package cache

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a key has no entry.
var ErrNotFound = errors.New("cache entry not found")

// Cache stores serialized recipe batches keyed by pantry hash.
type Cache interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key, value string) error
	Exists(ctx context.Context, key string) (bool, error)
}
