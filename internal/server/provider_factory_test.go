package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/config"
	"github.com/preston-bernstein/mlb-travel-picks/internal/statcache"
)

func TestProviderFactoryBuildsWithDefaults(t *testing.T) {
	built := newProviderFactory(nil, nil).build(config.Config{Provider: "fixture"})
	if built.provider == nil {
		t.Fatalf("expected provider")
	}
	if len(built.closers) != 0 {
		t.Fatalf("expected nothing to close without a rate limit or redis, got %d", len(built.closers))
	}
}

func TestProviderFactoryAddsRateLimiterCloser(t *testing.T) {
	cfg := config.Config{
		Provider: "fixture",
		MLBStats: config.MLBStatsConfig{MinInterval: time.Millisecond},
	}
	built := newProviderFactory(nil, nil).build(cfg)
	if len(built.closers) != 1 {
		t.Fatalf("expected rate limiter closer, got %d", len(built.closers))
	}
	built.closers[0]()
}

func TestProviderFactoryFallsBackWhenRedisUnavailable(t *testing.T) {
	orig := connectRedis
	defer func() { connectRedis = orig }()
	connectRedis = func(ctx context.Context, cfg config.CacheConfig) (statcache.Cache, func() error, error) {
		return nil, nil, errors.New("connection refused")
	}

	cache, closeFn := newProviderFactory(nil, nil).buildCache(config.CacheConfig{RedisAddr: "localhost:6379"})
	if _, ok := cache.(*statcache.MemoryCache); !ok {
		t.Fatalf("expected memory cache fallback, got %T", cache)
	}
	if closeFn != nil {
		t.Fatalf("expected no closer for the memory cache")
	}
}

func TestProviderFactoryUsesRedisWhenReachable(t *testing.T) {
	orig := connectRedis
	defer func() { connectRedis = orig }()
	closed := false
	connectRedis = func(ctx context.Context, cfg config.CacheConfig) (statcache.Cache, func() error, error) {
		if cfg.RedisDB != 2 {
			t.Fatalf("expected redis db passed through, got %d", cfg.RedisDB)
		}
		return statcache.NewMemoryCache(), func() error { closed = true; return nil }, nil
	}

	built := newProviderFactory(nil, nil).build(config.Config{
		Provider: "fixture",
		Cache:    config.CacheConfig{RedisAddr: "localhost:6379", RedisDB: 2, TTL: time.Minute},
	})
	if len(built.closers) != 1 {
		t.Fatalf("expected redis closer, got %d", len(built.closers))
	}
	built.closers[0]()
	if !closed {
		t.Fatalf("expected redis client closed")
	}
}
