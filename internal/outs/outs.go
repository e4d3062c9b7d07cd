// Package outs projects the outs each probable starter records and sets the
// projection against the posted outs-recorded line.
package outs

import (
	"fmt"
	"math"
	"sort"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/odds"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/krate"
	"github.com/preston-bernstein/mlb-travel-picks/internal/picks"
)

// Recommendation is the side taken against an outs line.
type Recommendation string

const (
	RecommendOver   Recommendation = "Over"
	RecommendUnder  Recommendation = "Under"
	RecommendNone   Recommendation = "No Bet"
	RecommendNoLine Recommendation = "No Line"
)

const (
	highKBonus  = 2.0
	goodKBonus  = 1.2
	lowKPenalty = -1.5

	highStarts = 10
	lowStarts  = 5
)

// Params holds the projection's weights and league baselines.
type Params struct {
	Baseline       float64
	RecentGames    int
	MinRecentGames int
	RecentWeight   float64
	LeagueOPS      float64
	OPSWeight      float64
	LeagueWHIP     float64
	WHIPWeight     float64
	HomeEdge       float64
	HighKRate      float64
	GoodKRate      float64
	LowKRate       float64
	MinEdge        float64
	MinOuts        float64
	MaxOuts        float64
}

// DefaultParams returns the stock projection.
func DefaultParams() Params {
	return Params{
		Baseline:       15,
		RecentGames:    5,
		MinRecentGames: 3,
		RecentWeight:   0.4,
		LeagueOPS:      0.750,
		OPSWeight:      6,
		LeagueWHIP:     1.30,
		WHIPWeight:     3,
		HomeEdge:       0.8,
		HighKRate:      0.28,
		GoodKRate:      0.24,
		LowKRate:       0.18,
		MinEdge:        1.5,
		MinOuts:        3,
		MaxOuts:        27,
	}
}

// Factor is one adjustment that went into a projection.
type Factor struct {
	Name       string  `json:"name"`
	Detail     string  `json:"detail"`
	Adjustment float64 `json:"adjustment"`
}

// Projection is one starter's projected outs and the call against the posted line.
type Projection struct {
	GameID         string                `json:"gameId"`
	Venue          string                `json:"venue"`
	StartTime      string                `json:"startTime"`
	Pitcher        games.Pitcher         `json:"pitcher"`
	Team           teams.Team            `json:"team"`
	Opponent       teams.Team            `json:"opponent"`
	Home           bool                  `json:"isHome"`
	Starts         int                   `json:"gamesStarted"`
	SeasonAverage  float64               `json:"seasonOutsPerStart"`
	RecentAverage  float64               `json:"recentOutsAverage"`
	RecentGames    []pitchers.Appearance `json:"recentGames"`
	Outs           float64               `json:"projectedOuts"`
	Confidence     picks.Confidence      `json:"confidence"`
	Factors        []Factor              `json:"factors"`
	Line           *odds.PitcherProp     `json:"line,omitempty"`
	Edge           float64               `json:"edge"`
	Recommendation Recommendation        `json:"recommendation"`
	BetConfidence  picks.Confidence      `json:"betConfidence,omitempty"`
	Reason         string                `json:"reason"`
}

// IsBet reports whether the projection takes a side.
func (p Projection) IsBet() bool {
	return p.Recommendation == RecommendOver || p.Recommendation == RecommendUnder
}

// Bets counts the projections that take a side.
func Bets(list []Projection) int {
	n := 0
	for _, p := range list {
		if p.IsBet() {
			n++
		}
	}
	return n
}

// Projector projects outs for every probable starter on a slate.
type Projector struct {
	Params Params
}

// NewProjector builds a projector; zero params fall back to DefaultParams.
func NewProjector(p Params) Projector {
	if p == (Params{}) {
		p = DefaultParams()
	}
	return Projector{Params: p}
}

// Project returns one projection per probable starter of each game still to
// be played, away starter first. Stats come from in; appearances on or after
// asOf are ignored. lines ties games to upstream events so props can be found.
func (pr Projector) Project(gs []games.Game, in krate.Inputs, lines map[string]odds.Line, props []odds.PitcherProp, asOf string) []Projection {
	out := []Projection{}
	for _, g := range gs {
		if !g.Played() {
			continue
		}
		eventID := lines[g.ID].EventID
		if g.AwayProbable != nil {
			out = append(out, pr.project(g, *g.AwayProbable, g.AwayTeam, g.HomeTeam, false, in, eventID, props, asOf))
		}
		if g.HomeProbable != nil {
			out = append(out, pr.project(g, *g.HomeProbable, g.HomeTeam, g.AwayTeam, true, in, eventID, props, asOf))
		}
	}
	return out
}

func (pr Projector) project(g games.Game, pitcher games.Pitcher, team, opponent teams.Team, home bool, in krate.Inputs, eventID string, props []odds.PitcherProp, asOf string) Projection {
	p := pr.Params
	season := in.Seasons[pitcher.ID]
	recent := recentStarts(in.Logs[pitcher.ID], asOf, p.RecentGames)

	proj := Projection{
		GameID:        g.ID,
		Venue:         g.Venue,
		StartTime:     g.StartTime,
		Pitcher:       pitcher,
		Team:          team,
		Opponent:      opponent,
		Home:          home,
		Starts:        season.GamesStarted,
		SeasonAverage: round1(season.OutsPerStart()),
		RecentGames:   recent,
	}

	outs := p.Baseline
	base := p.Baseline
	if avg := season.OutsPerStart(); avg > 0 {
		base, outs = avg, avg
		proj.add("Season average", fmt.Sprintf("%.1f outs per start (%d starts)", avg, season.GamesStarted), 0)
	} else {
		proj.add("Season average", fmt.Sprintf("no season starts, baseline %.1f outs", p.Baseline), 0)
	}

	if len(recent) >= p.MinRecentGames {
		total := 0
		for _, a := range recent {
			total += a.OutsRecorded()
		}
		avg := float64(total) / float64(len(recent))
		proj.RecentAverage = round1(avg)
		adj := (avg - base) * p.RecentWeight
		outs += adj
		proj.add("Recent form", fmt.Sprintf("%.1f outs over the last %d starts", avg, len(recent)), adj)
	} else {
		proj.add("Recent form", fmt.Sprintf("only %d recent starts", len(recent)), 0)
	}

	if ops := in.Teams[opponent.ID].OPS; ops > 0 {
		adj := (p.LeagueOPS - ops) * p.OPSWeight
		outs += adj
		proj.add("Opponent OPS", fmt.Sprintf("%s %.3f against league %.3f", opponent.Name, ops, p.LeagueOPS), adj)
	} else {
		proj.add("Opponent OPS", "no opponent OPS", 0)
	}

	if whip := season.WHIP(); whip > 0 {
		adj := (p.LeagueWHIP - whip) * p.WHIPWeight
		outs += adj
		proj.add("WHIP", fmt.Sprintf("%.2f against league %.2f", whip, p.LeagueWHIP), adj)
	} else {
		proj.add("WHIP", "no WHIP", 0)
	}

	if home {
		outs += p.HomeEdge
		proj.add("Venue", "home start", p.HomeEdge)
	} else {
		outs -= p.HomeEdge
		proj.add("Venue", "road start", -p.HomeEdge)
	}

	if season.BattersFaced > 0 {
		rate := float64(season.Strikeouts) / float64(season.BattersFaced)
		adj := pr.strikeoutAdjustment(rate)
		outs += adj
		proj.add("Strikeout rate", fmt.Sprintf("%.1f%% of batters faced", rate*100), adj)
	} else {
		proj.add("Strikeout rate", "no strikeout rate", 0)
	}

	proj.Outs = round1(math.Max(p.MinOuts, math.Min(p.MaxOuts, outs)))
	proj.Confidence = confidence(len(recent), season.GamesStarted, p)

	if line, ok := odds.FindProp(props, eventID, odds.MarketPitcherOuts, pitcher.Name); ok {
		proj.Line = &line
		pr.call(&proj)
	} else {
		proj.Recommendation = RecommendNoLine
		proj.Reason = "no outs-recorded line posted"
	}
	return proj
}

func (pr Projector) strikeoutAdjustment(rate float64) float64 {
	switch {
	case rate > pr.Params.HighKRate:
		return highKBonus
	case rate > pr.Params.GoodKRate:
		return goodKBonus
	case rate < pr.Params.LowKRate:
		return lowKPenalty
	default:
		return 0
	}
}

// call compares the projection with its line. Edges inside MinEdge take no side.
func (pr Projector) call(proj *Projection) {
	edge := round1(proj.Outs - proj.Line.Point)
	proj.Edge = edge
	size := math.Abs(edge)
	if size < pr.Params.MinEdge {
		proj.Recommendation = RecommendNone
		proj.Reason = fmt.Sprintf("projection within %.1f outs of the %.1f line", size, proj.Line.Point)
		return
	}
	if edge > 0 {
		proj.Recommendation = RecommendOver
		proj.Reason = fmt.Sprintf("projected %.1f outs, %.1f over the %.1f line", proj.Outs, size, proj.Line.Point)
	} else {
		proj.Recommendation = RecommendUnder
		proj.Reason = fmt.Sprintf("projected %.1f outs, %.1f under the %.1f line", proj.Outs, size, proj.Line.Point)
	}
	switch {
	case size > 3:
		proj.BetConfidence = picks.ConfidenceHigh
	case size > 2:
		proj.BetConfidence = picks.ConfidenceMedium
	default:
		proj.BetConfidence = picks.ConfidenceLow
	}
}

func (p *Projection) add(name, detail string, adj float64) {
	p.Factors = append(p.Factors, Factor{Name: name, Detail: detail, Adjustment: round1(adj)})
}

func confidence(recent, starts int, p Params) picks.Confidence {
	switch {
	case recent >= p.RecentGames && starts >= highStarts:
		return picks.ConfidenceHigh
	case recent < p.MinRecentGames || starts < lowStarts:
		return picks.ConfidenceLow
	default:
		return picks.ConfidenceMedium
	}
}

// recentStarts returns up to n appearances before asOf with recorded outs, newest first.
func recentStarts(log pitchers.GameLog, asOf string, n int) []pitchers.Appearance {
	out := []pitchers.Appearance{}
	for _, a := range log.Appearances {
		if a.Date >= asOf || a.OutsRecorded() <= 0 {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
