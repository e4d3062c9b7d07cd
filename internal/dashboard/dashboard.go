// Package dashboard runs the full pick pipeline over one refresh's inputs and
// returns an immutable snapshot for the read API.
package dashboard

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/odds"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/krate"
	"github.com/preston-bernstein/mlb-travel-picks/internal/outs"
	"github.com/preston-bernstein/mlb-travel-picks/internal/picks"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
	"github.com/preston-bernstein/mlb-travel-picks/internal/trends"
)

// Strategy carries the tuning the pipeline needs.
type Strategy struct {
	// LookbackDays bounds the buckets the sweep rule sees before today.
	LookbackDays  int
	WeakTeam      picks.WeakTeam
	Doubleheader  bool
	KRate         krate.Params
	Outs          outs.Params
	BacktestOdds  decimal.Decimal
	BacktestStake decimal.Decimal
}

// Inputs is everything one build consumes. Buckets should span the season
// through Date; buckets after Date are ignored.
type Inputs struct {
	Date     string
	Buckets  []games.DateBucket
	KRate    krate.Inputs
	Quotes   []odds.Quote
	Props    []odds.PitcherProp
	Strategy Strategy
}

// Backtests replays the fade strategies over the season so far.
type Backtests struct {
	Sweep    picks.SweepBacktest    `json:"sweep"`
	WeakTeam picks.WeakTeamBacktest `json:"weakTeam"`
}

// Snapshot is the output of one Build.
type Snapshot struct {
	Date        string                  `json:"date"`
	Games       []travel.ClassifiedGame `json:"games"`
	Teams       []teams.Team            `json:"teams"`
	Trends      trends.Aggregates       `json:"trends"`
	Comparisons []trends.Comparison     `json:"comparisons"`
	Picks       picks.Board             `json:"picks"`
	KRate       []krate.Opportunity     `json:"krate"`
	Outs        []outs.Projection       `json:"outs"`
	Lines       map[string]odds.Line    `json:"lines"`
	Backtests   Backtests               `json:"backtests"`
	Dropped     int                     `json:"droppedRecords"`
}

// Build sanitizes the buckets, tracks travel, aggregates trends and derives
// every pick list for Date. It performs no I/O and the same inputs always
// produce the same snapshot.
func Build(in Inputs, logger *slog.Logger) Snapshot {
	clean, dropped := games.Sanitize(in.Buckets)

	var season, lookback []games.DateBucket
	today := games.NewDateBucket(in.Date, nil)
	lookbackStart := lookbackFrom(in.Date, in.Strategy.LookbackDays)
	for _, b := range clean {
		switch {
		case b.Date > in.Date:
			continue
		case b.Date == in.Date:
			today = b
		case b.Date >= lookbackStart:
			lookback = append(lookback, b)
		}
		season = append(season, b)
	}

	history := travel.Track(season)
	classified := history.Games()
	aggregates := trends.Compute(classified)

	var rule picks.DoubleheaderRule = picks.NoDoubleheaderRule{}
	if in.Strategy.Doubleheader {
		rule = picks.YesterdayDoubleheaderLosses{}
	}
	engine := picks.Engine{WeakTeam: in.Strategy.WeakTeam, Doubleheader: rule, Logger: logger}
	board := engine.Derive(today, lookback, history)

	screener := krate.NewScreener(in.Strategy.KRate)
	opportunities := picks.Guard(logger, picks.StrategyKRate, func() []krate.Opportunity {
		return screener.Screen(today.Games, in.KRate, in.Date)
	})

	lines := odds.Match(today.Games, in.Quotes)

	projector := outs.NewProjector(in.Strategy.Outs)
	projections := picks.Guard(logger, picks.StrategyOuts, func() []outs.Projection {
		return projector.Project(today.Games, in.KRate, lines, in.Props, in.Date)
	})

	return Snapshot{
		Date:        in.Date,
		Games:       classified,
		Teams:       history.Teams(),
		Trends:      aggregates,
		Comparisons: aggregates.Comparisons(),
		Picks:       board,
		KRate:       opportunities,
		Outs:        projections,
		Lines:       lines,
		Backtests: Backtests{
			Sweep:    picks.BacktestSweeps(season, in.Strategy.BacktestOdds, in.Strategy.BacktestStake),
			WeakTeam: picks.BacktestWeakTeam(season, in.Strategy.WeakTeam),
		},
		Dropped: dropped,
	}
}

// lookbackFrom returns the first date of the lookback window, or date itself
// when the window is empty or the date does not parse.
func lookbackFrom(date string, days int) string {
	if days <= 0 {
		return date
	}
	start, err := timeutil.AddDays(date, -days)
	if err != nil {
		return date
	}
	return start
}

// GamesOn returns the classified games played on date.
func (s Snapshot) GamesOn(date string) []travel.ClassifiedGame {
	out := []travel.ClassifiedGame{}
	for _, g := range s.Games {
		if g.Game.Date == date {
			out = append(out, g)
		}
	}
	return out
}

// Line returns the matched moneyline for a game, if any.
func (s Snapshot) Line(gameID string) (odds.Line, bool) {
	l, ok := s.Lines[gameID]
	return l, ok
}

// PickCount is the number of picks across every list. Outs projections only
// count when they take a side.
func (s Snapshot) PickCount() int {
	return len(s.Picks.Travel) + len(s.Picks.Sweep) + len(s.Picks.WeakTeam) + len(s.KRate) + outs.Bets(s.Outs)
}
