package krate

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// StatsSource fetches the per-pitcher and per-team records the screen needs.
type StatsSource interface {
	FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error)
	FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error)
	FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error)
}

// Collector gathers screen inputs for a slate, pausing between pitcher
// lookups. A failed lookup leaves that record out and never aborts the batch.
type Collector struct {
	source       StatsSource
	delay        time.Duration
	lookbackDays int
	logger       *slog.Logger
}

// NewCollector builds a collector. A non-positive lookback uses the default screen's.
func NewCollector(source StatsSource, delay time.Duration, lookbackDays int, logger *slog.Logger) *Collector {
	if lookbackDays <= 0 {
		lookbackDays = DefaultParams().LookbackDays
	}
	return &Collector{source: source, delay: delay, lookbackDays: lookbackDays, logger: logger}
}

// Collect fetches logs for every probable starter and batting lines for every
// team in gs. It returns early only when ctx is canceled.
func (c *Collector) Collect(ctx context.Context, gs []games.Game, asOf string) (Inputs, error) {
	in := Inputs{
		Logs:    map[string]pitchers.GameLog{},
		Seasons: map[string]pitchers.SeasonLine{},
		Teams:   map[string]pitchers.TeamBatting{},
	}
	if c == nil || c.source == nil {
		return in, nil
	}

	asOfDate, err := timeutil.ParseDate(asOf)
	if err != nil {
		return in, err
	}
	season := asOfDate.Year()
	start, _ := WindowStart(asOf, c.lookbackDays)

	first := true
	for _, g := range gs {
		if g.HomeProbable == nil || g.AwayProbable == nil {
			continue
		}
		for _, p := range []*games.Pitcher{g.HomeProbable, g.AwayProbable} {
			if _, done := in.Logs[p.ID]; done || p.ID == "" {
				continue
			}
			if !first {
				if err := c.pause(ctx); err != nil {
					return in, err
				}
			}
			first = false
			c.collectPitcher(ctx, &in, p.ID, start, asOf, season)
		}
		for _, teamID := range []string{g.HomeTeam.ID, g.AwayTeam.ID} {
			if _, done := in.Teams[teamID]; done {
				continue
			}
			batting, err := c.source.FetchTeamBatting(ctx, teamID, season)
			if err != nil {
				logging.Warn(c.logger, "team batting lookup failed", logging.FieldTeamID, teamID, "err", err)
				continue
			}
			in.Teams[teamID] = batting
		}
	}
	logging.Debug(c.logger, "k-rate inputs collected",
		logging.FieldDate, asOf,
		"pitchers", len(in.Logs),
		"season_fallbacks", len(in.Seasons),
		"teams", len(in.Teams),
	)
	return in, ctx.Err()
}

func (c *Collector) collectPitcher(ctx context.Context, in *Inputs, pitcherID, start, end string, season int) {
	log, err := c.source.FetchGameLog(ctx, pitcherID, start, end)
	if err != nil {
		logging.Warn(c.logger, "pitcher game log lookup failed", logging.FieldPitcherID, pitcherID, "err", err)
		log = pitchers.GameLog{PitcherID: pitcherID}
	}
	in.Logs[pitcherID] = log

	for _, a := range log.Appearances {
		if a.Counts() && a.Date >= start && a.Date <= end {
			return
		}
	}

	line, err := c.source.FetchSeasonLine(ctx, pitcherID, season)
	if err != nil {
		logging.Warn(c.logger, "pitcher season lookup failed", logging.FieldPitcherID, pitcherID, "err", err)
		return
	}
	in.Seasons[pitcherID] = line
}

func (c *Collector) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.delay):
		return nil
	}
}
