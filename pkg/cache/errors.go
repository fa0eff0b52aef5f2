package cache

import "errors"

// ErrMiss is returned by Get when the key is not present in the cache.
var ErrMiss = errors.New("cache miss")
