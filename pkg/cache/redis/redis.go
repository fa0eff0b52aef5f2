// Package redis provides a cache.Cache implementation backed by a Redis
// server using go-redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"instagrab/pkg/cache"
)

// Options defines the configuration parameters for the Redis connection.
type Options struct {
	// Addr is the Redis server address in host:port form
	Addr string
	// Password authenticates against the server; empty means no auth
	Password string
	// DB selects the logical database
	DB int
	// DialTimeout bounds the initial connection attempt
	DialTimeout time.Duration
}

// Redis implements the cache.Cache interface on top of a go-redis client.
type Redis struct {
	client *goredis.Client
}

// Get returns the raw value stored under key. A missing key is reported as
// cache.ErrMiss so callers can distinguish misses from transport failures.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, cache.ErrMiss
		}

		return nil, fmt.Errorf("could not get key %q: %w", key, err)
	}

	return b, nil
}

// Set stores val under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("could not set key %q: %w", key, err)
	}

	return nil
}

// Del removes the given keys. Deleting missing keys is not an error.
func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("could not delete keys: %w", err)
	}

	return nil
}

// Ping verifies the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("could not ping redis: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("could not close redis client: %w", err)
	}

	return nil
}

// Ensure Redis conforms to the cache.Cache interface at compile time.
var _ cache.Cache = (*Redis)(nil)

// New connects to Redis using the provided options and verifies the
// connection with a ping before returning.
func New(ctx context.Context, options Options) (*Redis, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        options.Addr,
		Password:    options.Password,
		DB:          options.DB,
		DialTimeout: options.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("could not ping redis: %w", err)
	}

	return &Redis{client: client}, nil
}
