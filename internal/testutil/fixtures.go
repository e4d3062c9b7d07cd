package testutil

import (
	"sort"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
)

// Team returns a team fixture.
func Team(id, name string) teams.Team {
	return teams.Team{ID: id, Name: name}
}

// GameOption mutates a game fixture.
type GameOption func(*games.Game)

// SampleGame returns a scheduled game fixture between two placeholder teams.
func SampleGame(id string) games.Game {
	return NewGame(id, "2024-05-01", "Test Park", Team("home", "Home"), Team("away", "Away"))
}

// NewGame builds a scheduled game; options adjust it.
func NewGame(id, date, venue string, home, away teams.Team, opts ...GameOption) games.Game {
	g := games.Game{
		ID:        id,
		Date:      date,
		StartTime: date + "T23:05:00Z",
		Venue:     venue,
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    games.StatusScheduled,
		Meta:      games.GameMeta{Provider: "test"},
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// Final marks the game final with the given score.
func Final(home, away int) GameOption {
	return func(g *games.Game) {
		g.Status = games.StatusFinal
		g.Score = &games.Score{Home: home, Away: away}
	}
}

// WithStatus sets the game status.
func WithStatus(status games.GameStatus) GameOption {
	return func(g *games.Game) { g.Status = status }
}

// InSeries places the game in a series.
func InSeries(number, total int, description string) GameOption {
	return func(g *games.Game) {
		g.Series = &games.SeriesPosition{Number: number, Total: total}
		g.SeriesDescription = description
	}
}

// WithSeriesStatus sets the upstream running series tally.
func WithSeriesStatus(homeWins, awayWins int) GameOption {
	return func(g *games.Game) {
		g.SeriesStatus = &games.SeriesStatus{HomeWins: homeWins, AwayWins: awayWins, IsVersus: true}
	}
}

// StartingAt overrides the RFC3339 start time.
func StartingAt(ts string) GameOption {
	return func(g *games.Game) { g.StartTime = ts }
}

// Doubleheader marks the game as part of a doubleheader with the given sequence number.
func Doubleheader(number int) GameOption {
	return func(g *games.Game) {
		g.DoubleHeader = true
		g.GameNumber = number
	}
}

// WithProbables sets both probable starters.
func WithProbables(home, away *games.Pitcher) GameOption {
	return func(g *games.Game) {
		g.HomeProbable = home
		g.AwayProbable = away
	}
}

// Buckets groups games into date buckets ordered by date, keeping game order within a date.
func Buckets(gs ...games.Game) []games.DateBucket {
	byDate := make(map[string][]games.Game)
	var dates []string
	for _, g := range gs {
		if _, ok := byDate[g.Date]; !ok {
			dates = append(dates, g.Date)
		}
		byDate[g.Date] = append(byDate[g.Date], g)
	}
	sort.Strings(dates)
	out := make([]games.DateBucket, 0, len(dates))
	for _, d := range dates {
		out = append(out, games.NewDateBucket(d, byDate[d]))
	}
	return out
}

// SampleDateBucket builds a bucket with a single sample game.
func SampleDateBucket(date string, id string) games.DateBucket {
	g := SampleGame(id)
	g.Date = date
	return games.NewDateBucket(date, []games.Game{g})
}
