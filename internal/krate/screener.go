package krate

import (
	"fmt"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/picks"
)

// Inputs are the stat records a screen needs, keyed by pitcher or team id.
type Inputs struct {
	Logs    map[string]pitchers.GameLog     `json:"logs"`
	Seasons map[string]pitchers.SeasonLine  `json:"seasons"`
	Teams   map[string]pitchers.TeamBatting `json:"teams"`
}

// Opportunity is a game flagged for an under.
type Opportunity struct {
	GameID                  string           `json:"gameId"`
	Venue                   string           `json:"venue"`
	StartTime               string           `json:"startTime"`
	HomeTeam                teams.Team       `json:"homeTeam"`
	AwayTeam                teams.Team       `json:"awayTeam"`
	HomePitcher             PitcherRate      `json:"homePitcher"`
	AwayPitcher             PitcherRate      `json:"awayPitcher"`
	HomeTeamKRate           float64          `json:"homeTeamKRate"`
	AwayTeamKRate           float64          `json:"awayTeamKRate"`
	Confidence              picks.Confidence `json:"confidence"`
	AssumedTotal            float64          `json:"assumedTotal"`
	AssumedFirstFive        float64          `json:"assumedFirstFiveTotal"`
	Recommendation          string           `json:"recommendation"`
	FirstFiveRecommendation string           `json:"firstFiveRecommendation"`
}

// Screener flags games where both starters strike out batters at or above the threshold.
type Screener struct {
	Params Params
}

// NewScreener builds a screener; zero params fall back to DefaultParams.
func NewScreener(p Params) Screener {
	if p == (Params{}) {
		p = DefaultParams()
	}
	return Screener{Params: p}
}

// Screen evaluates games as of the given date. Games without both probable
// starters, or where either starter has no usable rate, are skipped.
func (s Screener) Screen(gs []games.Game, in Inputs, asOf string) []Opportunity {
	out := []Opportunity{}
	for _, g := range gs {
		if !g.Played() || g.HomeProbable == nil || g.AwayProbable == nil {
			continue
		}
		home := s.rate(*g.HomeProbable, in, asOf)
		away := s.rate(*g.AwayProbable, in, asOf)
		if home.Source == SourceNone || away.Source == SourceNone {
			continue
		}
		if home.Rate < s.Params.Threshold || away.Rate < s.Params.Threshold {
			continue
		}

		out = append(out, Opportunity{
			GameID:                  g.ID,
			Venue:                   g.Venue,
			StartTime:               g.StartTime,
			HomeTeam:                g.HomeTeam,
			AwayTeam:                g.AwayTeam,
			HomePitcher:             home,
			AwayPitcher:             away,
			HomeTeamKRate:           TeamStrikeoutRate(lookupTeam(in, g.HomeTeam.ID), s.Params.DefaultTeamRate),
			AwayTeamKRate:           TeamStrikeoutRate(lookupTeam(in, g.AwayTeam.ID), s.Params.DefaultTeamRate),
			Confidence:              s.confidence(home, away),
			AssumedTotal:            s.Params.AssumedTotal,
			AssumedFirstFive:        s.Params.AssumedFirstFive,
			Recommendation:          fmt.Sprintf("Under %.1f", s.Params.AssumedTotal),
			FirstFiveRecommendation: fmt.Sprintf("F5 Under %.1f", s.Params.AssumedFirstFive),
		})
	}
	return out
}

func (s Screener) rate(p games.Pitcher, in Inputs, asOf string) PitcherRate {
	log := in.Logs[p.ID]
	log.PitcherID = p.ID
	var season *pitchers.SeasonLine
	if line, ok := in.Seasons[p.ID]; ok {
		season = &line
	}
	r := ComputePitcherRate(log, season, asOf, s.Params)
	r.Name = p.Name
	return r
}

func (s Screener) confidence(home, away PitcherRate) picks.Confidence {
	if home.Rate >= s.Params.HighThreshold && away.Rate >= s.Params.HighThreshold {
		return picks.ConfidenceHigh
	}
	for _, r := range []PitcherRate{home, away} {
		if r.Source != SourceSeason && r.Appearances < s.Params.MinAppearances {
			return picks.ConfidenceLow
		}
	}
	return picks.ConfidenceMedium
}

func lookupTeam(in Inputs, teamID string) *pitchers.TeamBatting {
	if b, ok := in.Teams[teamID]; ok {
		return &b
	}
	return nil
}
