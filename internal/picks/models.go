// Package picks derives daily betting picks from today's games and the
// travel history that precedes them. Every strategy is a pure function.
package picks

import (
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
)

// Confidence grades a pick.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Strategy names the rule that produced a pick.
type Strategy string

const (
	StrategyTravel   Strategy = "travel"
	StrategySweep    Strategy = "sweep"
	StrategyWeakTeam Strategy = "weak-team"
	StrategyKRate    Strategy = "krate"
	StrategyOuts     Strategy = "outs"
)

// Pick is the fields every strategy shares.
type Pick struct {
	GameID            string     `json:"gameId"`
	Strategy          Strategy   `json:"strategy"`
	RecommendedSide   string     `json:"recommendedSide"`
	RecommendedTeamID string     `json:"recommendedTeamId"`
	Reason            string     `json:"reason"`
	Confidence        Confidence `json:"confidence"`
	HomeTeam          teams.Team `json:"homeTeam"`
	AwayTeam          teams.Team `json:"awayTeam"`
	Venue             string     `json:"venue"`
	StartTime         string     `json:"startTime"`
}

func basePick(g games.Game, strategy Strategy, side teams.Team) Pick {
	return Pick{
		GameID:            g.ID,
		Strategy:          strategy,
		RecommendedSide:   side.Name,
		RecommendedTeamID: side.ID,
		HomeTeam:          g.HomeTeam,
		AwayTeam:          g.AwayTeam,
		Venue:             g.Venue,
		StartTime:         g.StartTime,
	}
}

// TravelPick backs the home side when the visitor arrives at a travel disadvantage.
type TravelPick struct {
	Pick
	HomeLabel    travel.Label `json:"homeTravelType"`
	AwayLabel    travel.Label `json:"awayTravelType"`
	HomeRestDays int          `json:"homeRestDays"`
}

// SweepSource records which detection pass produced a sweep pick.
type SweepSource string

const (
	SweepFromSeries       SweepSource = "series"
	SweepFromSeriesStatus SweepSource = "series-status"
	SweepFromDoubleheader SweepSource = "doubleheader"
)

// SweepPick backs a team facing a series sweep.
type SweepPick struct {
	Pick
	PreviousLosses int         `json:"previousLosses"`
	SeriesKey      string      `json:"seriesKey"`
	Opponent       teams.Team  `json:"opposingTeam"`
	Source         SweepSource `json:"source"`
}

// WeakTeamPick fades the designated team on the run line.
type WeakTeamPick struct {
	Pick
	Spread     string     `json:"spread"`
	Opponent   teams.Team `json:"opponent"`
	WeakTeam   teams.Team `json:"fadedTeam"`
	WeakAtHome bool       `json:"fadedTeamHome"`
}

// Board is the full set of pick lists for one date.
type Board struct {
	Date     string         `json:"date"`
	Travel   []TravelPick   `json:"travel"`
	Sweep    []SweepPick    `json:"sweep"`
	WeakTeam []WeakTeamPick `json:"weakTeam"`
}
