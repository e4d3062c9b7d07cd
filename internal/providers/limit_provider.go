package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
)

// rateLimitedProvider wraps a DataProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     DataProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next DataProvider, interval time.Duration, logger *slog.Logger) DataProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *rateLimitedProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	if err := p.wait(ctx, "schedule"); err != nil {
		return nil, err
	}
	return p.next.FetchSchedule(ctx, start, end)
}

func (p *rateLimitedProvider) FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error) {
	if err := p.wait(ctx, "game_log"); err != nil {
		return pitchers.GameLog{}, err
	}
	return p.next.FetchGameLog(ctx, pitcherID, start, end)
}

func (p *rateLimitedProvider) FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error) {
	if err := p.wait(ctx, "season_line"); err != nil {
		return pitchers.SeasonLine{}, err
	}
	return p.next.FetchSeasonLine(ctx, pitcherID, season)
}

func (p *rateLimitedProvider) FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error) {
	if err := p.wait(ctx, "team_batting"); err != nil {
		return pitchers.TeamBatting{}, err
	}
	return p.next.FetchTeamBatting(ctx, teamID, season)
}

func (p *rateLimitedProvider) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "op", op)
		return ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch", "op", op)
	return nil
}
