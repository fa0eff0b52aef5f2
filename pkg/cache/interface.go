// Package cache defines the key-value cache abstraction used to memoize
// scrape results, plus the key-building helpers shared by its consumers.
// The backing service is external to this system; see the redis subpackage
// for the production implementation.
package cache

import (
	"context"
	"time"
)

//go:generate mockgen -package mockcache -source=interface.go -destination=mock/mockcache.go *
type Cache interface {
	// Get returns the raw value stored under key, or ErrMiss when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores val under key with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	// Del removes the given keys; missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
	// Ping verifies the backing service is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying connections.
	Close() error
}
