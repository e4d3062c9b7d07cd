package picks

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
)

// Engine runs the three pick strategies for a date, each behind Guard.
type Engine struct {
	WeakTeam     WeakTeam
	Doubleheader DoubleheaderRule
	Logger       *slog.Logger
}

// Derive builds the board for today. lookback holds the buckets before today;
// history must cover lookback and today.
func (e Engine) Derive(today games.DateBucket, lookback []games.DateBucket, history *travel.History) Board {
	return Board{
		Date: today.Date,
		Travel: Guard(e.Logger, StrategyTravel, func() []TravelPick {
			return TravelAdvantage(today, history)
		}),
		Sweep: Guard(e.Logger, StrategySweep, func() []SweepPick {
			return FadeTheSweep(today, lookback, e.Doubleheader)
		}),
		WeakTeam: Guard(e.Logger, StrategyWeakTeam, func() []WeakTeamPick {
			return FadeWeakTeam(today, e.WeakTeam)
		}),
	}
}
