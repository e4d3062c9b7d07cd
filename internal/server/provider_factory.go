package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/config"
	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
	"github.com/preston-bernstein/mlb-travel-picks/internal/metrics"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers/mlbstats"
	"github.com/preston-bernstein/mlb-travel-picks/internal/statcache"
)

const redisConnectTimeout = 3 * time.Second

var connectRedis = func(ctx context.Context, cfg config.CacheConfig) (statcache.Cache, func() error, error) {
	c, err := statcache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

// providerFactory assembles the provider with shared wrappers (rate limit, retry, stat cache).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// builtProvider is the wrapped provider plus whatever must be released on shutdown.
type builtProvider struct {
	provider providers.DataProvider
	closers  []func()
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) builtProvider {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

// wrap layers the rate limiter (when MinInterval is set), retries and the stat cache over base.
func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) builtProvider {
	var out builtProvider
	next := base
	if cfg.MLBStats.MinInterval > 0 {
		next = providers.NewRateLimitedProvider(next, cfg.MLBStats.MinInterval, f.logger)
		if c, ok := next.(interface{ Close() }); ok {
			out.closers = append(out.closers, c.Close)
		}
	}
	next = providers.NewRetryingProvider(next, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base),
		cfg.MLBStats.RetryAttempts, cfg.MLBStats.RetryBackoff)

	cache, closeCache := f.buildCache(cfg.Cache)
	if closeCache != nil {
		out.closers = append(out.closers, closeCache)
	}
	out.provider = providers.NewCachedProvider(next, cache, cfg.Cache.TTL, f.logger, f.metrics)
	return out
}

// buildCache prefers Redis when configured and falls back to memory when it is unreachable.
func (f providerFactory) buildCache(cfg config.CacheConfig) (statcache.Cache, func()) {
	if cfg.RedisAddr == "" {
		return statcache.NewMemoryCache(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	cache, closeFn, err := connectRedis(ctx, cfg)
	if err != nil {
		logging.Warn(f.logger, "redis unavailable, using in-memory stat cache", "addr", cfg.RedisAddr, "err", err)
		return statcache.NewMemoryCache(), nil
	}
	logging.Info(f.logger, "stat cache using redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return cache, func() {
		if err := closeFn(); err != nil {
			logging.Warn(f.logger, "redis close failed", "err", err)
		}
	}
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "mlbstats":
		return mlbstats.NewClient(mlbstats.Config{
			BaseURL: cfg.MLBStats.BaseURL,
			Timeout: cfg.MLBStats.Timeout,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", "provider", cfg.Provider)
		return fixture.New()
	}
}
