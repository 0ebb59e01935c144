// internal/app/services/cacheaside/cacheaside.go

// Package cacheaside implements the shared read-through-cache policy for
// entity reads. The cache is advisory: a miss or an unavailable cache store
// only adds latency, never changes the result, because the loader reads the
// authoritative store. Not-found is never cached, and concurrent misses for
// the same key are allowed to issue redundant authoritative reads.
package cacheaside

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Cache is the slice of the cache store the read path needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	SetWithTTL(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Get serves one entity read. On a cache hit the cached bytes are decoded
// and returned. On a miss (or cache-store failure, which degrades to a
// miss) the loader runs against the authoritative store and, on success,
// the result is written back with the given TTL. A loader error passes
// through untouched so NotFound sentinels survive. The bool reports
// whether the value came from cache.
func Get[T any](ctx context.Context, c Cache, log *zap.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	cached, found, err := c.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed, falling back to authoritative store",
			zap.String("key", key), zap.Error(err))
	}
	if found {
		var v T
		if err := json.Unmarshal(cached, &v); err == nil {
			return v, true, nil
		}
		// Undecodable entry: treat as a miss and overwrite below.
		log.Warn("cache entry corrupt, rereading", zap.String("key", key))
	}

	v, err := load(ctx)
	if err != nil {
		return zero, false, err
	}

	// Populate is best-effort; the caller already has the value.
	if data, err := json.Marshal(v); err == nil {
		if err := c.SetWithTTL(ctx, key, data, ttl); err != nil {
			log.Warn("cache populate failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, false, nil
}
