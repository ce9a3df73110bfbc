// Package cache stores rendered gauge artifacts.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for the
// server, and [NullCache] when caching is off. Keys are built by a [Keyer]
// so CLI and server share one key layout.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// TTLArtifact is how long a rendered SVG/PNG/PDF/JSON stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures; callers generally treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
