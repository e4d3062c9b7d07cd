package picks

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/trends"
)

var hundred = decimal.NewFromInt(100)

// SweepOutcome is one historical sweep-fade bet.
type SweepOutcome struct {
	SeriesKey      string          `json:"seriesKey"`
	GameID         string          `json:"gameId"`
	Date           string          `json:"date"`
	Team           teams.Team      `json:"team"`
	Opponent       teams.Team      `json:"opponent"`
	PreviousLosses int             `json:"previousLosses"`
	Prevented      bool            `json:"sweepPrevented"`
	Profit         decimal.Decimal `json:"profit"`
}

// SweepBacktest summarizes every completed sweep-fade opportunity in a season.
type SweepBacktest struct {
	Opportunities   []SweepOutcome  `json:"opportunities"`
	Total           int             `json:"totalOpportunities"`
	SweepsPrevented int             `json:"sweepsPrevented"`
	SweepsCompleted int             `json:"sweepsCompleted"`
	WinPercentage   float64         `json:"winPercentage"`
	Staked          decimal.Decimal `json:"staked"`
	Profit          decimal.Decimal `json:"profit"`
	ROI             decimal.Decimal `json:"roi"`
}

// BacktestSweeps replays completed series of three or more games. When one
// side lost every earlier game, a flat stake is placed on it in the final game
// at fixed decimal odds.
func BacktestSweeps(season []games.DateBucket, odds, stake decimal.Decimal) SweepBacktest {
	series := make(map[string][]games.Game)
	var keys []string
	for _, bucket := range season {
		for _, g := range bucket.Games {
			if g.Series == nil || g.Series.Total < 3 || !g.HasResult() {
				continue
			}
			key := SeriesKey(g)
			if _, ok := series[key]; !ok {
				keys = append(keys, key)
			}
			series[key] = append(series[key], g)
		}
	}

	result := SweepBacktest{Opportunities: []SweepOutcome{}}
	winProfit := stake.Mul(odds.Sub(decimal.NewFromInt(1)))

	for _, key := range keys {
		list := series[key]
		for _, final := range list {
			if !final.Series.IsFinalGame() {
				continue
			}
			prior := seriesRun(final, list)
			if len(prior) < 2 {
				continue
			}
			outcome, ok := sweepOutcome(key, final, prior, stake, winProfit)
			if !ok {
				continue
			}
			if outcome.Prevented {
				result.SweepsPrevented++
			} else {
				result.SweepsCompleted++
			}
			result.Profit = result.Profit.Add(outcome.Profit)
			result.Opportunities = append(result.Opportunities, outcome)
		}
	}

	result.Total = len(result.Opportunities)
	result.WinPercentage = trends.Percentage(result.SweepsPrevented, result.SweepsCompleted)
	result.Staked = stake.Mul(decimal.NewFromInt(int64(result.Total)))
	if result.Staked.IsPositive() {
		result.ROI = result.Profit.Div(result.Staked).Mul(hundred).Round(2)
	}
	return result
}

func sweepOutcome(key string, final games.Game, prior []games.Game, stake, winProfit decimal.Decimal) (SweepOutcome, bool) {
	var swept, opponent teams.Team
	switch {
	case lostAll(prior, final.HomeTeam.ID):
		swept, opponent = final.HomeTeam, final.AwayTeam
	case lostAll(prior, final.AwayTeam.ID):
		swept, opponent = final.AwayTeam, final.HomeTeam
	default:
		return SweepOutcome{}, false
	}

	outcome := SweepOutcome{
		SeriesKey:      key,
		GameID:         final.ID,
		Date:           final.Date,
		Team:           swept,
		Opponent:       opponent,
		PreviousLosses: len(prior),
		Prevented:      !final.Lost(swept.ID),
	}
	if outcome.Prevented {
		outcome.Profit = winProfit
	} else {
		outcome.Profit = stake.Neg()
	}
	return outcome, true
}

// WeakTeamOutcome is one historical run-line fade of the weak team.
type WeakTeamOutcome struct {
	GameID       string     `json:"gameId"`
	Date         string     `json:"date"`
	Opponent     teams.Team `json:"opponent"`
	WeakAtHome   bool       `json:"fadedTeamHome"`
	WeakRuns     int        `json:"fadedTeamRuns"`
	OpponentRuns int        `json:"opponentRuns"`
	Covered      bool       `json:"runLineCover"`
}

// WeakTeamBacktest summarizes how often fading the weak team covered.
type WeakTeamBacktest struct {
	Games           []WeakTeamOutcome `json:"games"`
	Total           int               `json:"total"`
	Wins            int               `json:"fadedTeamWins"`
	Losses          int               `json:"fadedTeamLosses"`
	Covers          int               `json:"covers"`
	CoverPercentage float64           `json:"coverPercentage"`
	WinPercentage   float64           `json:"fadedTeamWinPercentage"`
}

// BacktestWeakTeam replays every completed game of the weak team. The fade
// covers when the opponent's margin exceeds the spread's magnitude.
func BacktestWeakTeam(season []games.DateBucket, weak WeakTeam) WeakTeamBacktest {
	result := WeakTeamBacktest{Games: []WeakTeamOutcome{}}
	spread, err := decimal.NewFromString(weak.Spread)
	if err != nil {
		spread = decimal.NewFromFloat(-1.5)
	}
	threshold := spread.Abs()

	for _, bucket := range season {
		for _, g := range bucket.Games {
			if !g.HasResult() || !g.Involves(weak.TeamID) {
				continue
			}
			atHome := g.HomeTeam.ID == weak.TeamID
			weakRuns, oppRuns := g.Score.Away, g.Score.Home
			if atHome {
				weakRuns, oppRuns = g.Score.Home, g.Score.Away
			}
			outcome := WeakTeamOutcome{
				GameID:       g.ID,
				Date:         g.Date,
				Opponent:     g.Opponent(weak.TeamID),
				WeakAtHome:   atHome,
				WeakRuns:     weakRuns,
				OpponentRuns: oppRuns,
				Covered:      decimal.NewFromInt(int64(oppRuns - weakRuns)).GreaterThan(threshold),
			}
			if weakRuns > oppRuns {
				result.Wins++
			} else {
				result.Losses++
			}
			if outcome.Covered {
				result.Covers++
			}
			result.Games = append(result.Games, outcome)
		}
	}

	result.Total = len(result.Games)
	result.CoverPercentage = trends.Percentage(result.Covers, result.Total-result.Covers)
	result.WinPercentage = trends.Percentage(result.Wins, result.Losses)
	return result
}
