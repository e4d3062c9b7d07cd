// Package statcache caches upstream stat lookups as JSON, in memory or in Redis.
package statcache

import (
	"context"
	"strings"
	"time"
)

// Cache stores JSON-encodable values by key with a time-to-live.
type Cache interface {
	// Get decodes the cached value into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Key joins parts into a namespaced cache key.
func Key(parts ...string) string {
	return "mlb:" + strings.Join(parts, ":")
}
