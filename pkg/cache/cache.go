// Package cache stores rendered artifacts between runs.
//
// Rendering SVG through Graphviz is the slowest step of the layout command,
// so its output is cached under a key derived from the DOT source. The
// [FileCache] keeps entries on disk below the user cache directory and the
// [NullCache] disables caching (--no-cache).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ArtifactTTL is how long rendered artifacts stay valid.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// ArtifactKey returns the cache key for source rendered in format.
func ArtifactKey(format string, source []byte) string {
	return "artifact:" + format + ":" + Hash(source)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Cached returns the value under key, or calls produce and stores its
// result for ttl. Cache failures never fail the call.
func Cached(ctx context.Context, c Cache, key string, ttl time.Duration, produce func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err := produce()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}

// NullCache misses on every lookup. It backs --no-cache.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
