package providers

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/metrics"
	"github.com/preston-bernstein/mlb-travel-picks/internal/statcache"
)

// cachedProvider serves stat lookups from a cache and passes schedule calls
// through untouched. Cache failures degrade to an upstream call.
type cachedProvider struct {
	next     DataProvider
	cache    statcache.Cache
	ttl      time.Duration
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewCachedProvider wraps next with a stat lookup cache.
func NewCachedProvider(next DataProvider, cache statcache.Cache, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder) DataProvider {
	if cache == nil {
		return next
	}
	return &cachedProvider{next: next, cache: cache, ttl: ttl, logger: logger, recorder: recorder}
}

func (c *cachedProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	return c.next.FetchSchedule(ctx, start, end)
}

func (c *cachedProvider) FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error) {
	key := statcache.Key("gamelog", pitcherID, start, end)
	return cached(ctx, c, key, func() (pitchers.GameLog, error) {
		return c.next.FetchGameLog(ctx, pitcherID, start, end)
	})
}

func (c *cachedProvider) FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error) {
	key := statcache.Key("season", pitcherID, strconv.Itoa(season))
	return cached(ctx, c, key, func() (pitchers.SeasonLine, error) {
		return c.next.FetchSeasonLine(ctx, pitcherID, season)
	})
}

func (c *cachedProvider) FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error) {
	key := statcache.Key("batting", teamID, strconv.Itoa(season))
	return cached(ctx, c, key, func() (pitchers.TeamBatting, error) {
		return c.next.FetchTeamBatting(ctx, teamID, season)
	})
}

func cached[T any](ctx context.Context, c *cachedProvider, key string, fetch func() (T, error)) (T, error) {
	var out T
	hit, err := c.cache.Get(ctx, key, &out)
	if err != nil {
		logWithProvider(ctx, c.logger, slog.LevelWarn, "statcache", "stat cache read failed", "key", key, "err", err)
	}
	c.recorder.RecordCacheLookup(hit)
	if hit {
		return out, nil
	}

	out, err = fetch()
	if err != nil {
		return out, err
	}
	if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
		logWithProvider(ctx, c.logger, slog.LevelWarn, "statcache", "stat cache write failed", "key", key, "err", err)
	}
	return out, nil
}
