package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache and cache.disabled. Every artifact lookup
// misses and nothing is written, so each run renders from scratch.
type NullCache struct{}

// NewNullCache returns the no-op cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }

// IsNull reports whether c never stores artifacts. The runner uses it to
// skip key hashing and cache hooks entirely.
func IsNull(c Cache) bool {
	switch c.(type) {
	case NullCache, *NullCache, nil:
		return true
	}
	return false
}
