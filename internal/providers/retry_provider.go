package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DataProvider with retry/backoff behavior and
// records every attempt on the metrics recorder.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	rng          *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) DataProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	return retry(ctx, r, "schedule", func(ctx context.Context) ([]games.DateBucket, error) {
		return r.inner.FetchSchedule(ctx, start, end)
	})
}

func (r *retryingProvider) FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error) {
	return retry(ctx, r, "game_log", func(ctx context.Context) (pitchers.GameLog, error) {
		return r.inner.FetchGameLog(ctx, pitcherID, start, end)
	})
}

func (r *retryingProvider) FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error) {
	return retry(ctx, r, "season_line", func(ctx context.Context) (pitchers.SeasonLine, error) {
		return r.inner.FetchSeasonLine(ctx, pitcherID, season)
	})
}

func (r *retryingProvider) FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error) {
	return retry(ctx, r, "team_batting", func(ctx context.Context) (pitchers.TeamBatting, error) {
		return r.inner.FetchTeamBatting(ctx, teamID, season)
	})
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		started := time.Now()
		out, err := fn(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(started), err)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if rl, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rl.RetryAfter)
		}

		if attempt == r.maxAttempts {
			break
		}

		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		// backoff with context awareness
		delay := r.computeDelay(err, attempt)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
		"op", op, "attempts", r.maxAttempts, "err", lastErr)
	return zero, lastErr
}

// computeDelay honors an upstream Retry-After, otherwise jitters the backoff
// into [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	return half + time.Duration(r.rng.Int63n(int64(base-half)+1))
}
