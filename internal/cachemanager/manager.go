// Package cachemanager provides TTL-based caching for derived values
// that are expensive to compute but cheap to throw away, like
// formatted dataset cells. It is distinct from the grid's render
// cache: entries here expire on a clock, not on an LRU budget.
package cachemanager

import (
	"context"
	"time"
)

type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
