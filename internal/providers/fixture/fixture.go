package fixture

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

const (
	providerName = "fixture"
	epoch        = "2025-01-01"
	// cycleDays is three three-game series followed by a league-wide off day.
	cycleDays = 10
	offDay    = 9
)

type club struct {
	team  teams.Team
	venue string
}

var (
	rockies  = club{teams.Team{ID: "115", Name: "Colorado Rockies", Abbreviation: "COL"}, "Coors Field"}
	dodgers  = club{teams.Team{ID: "119", Name: "Los Angeles Dodgers", Abbreviation: "LAD"}, "Dodger Stadium"}
	yankees  = club{teams.Team{ID: "147", Name: "New York Yankees", Abbreviation: "NYY"}, "Yankee Stadium"}
	redSox   = club{teams.Team{ID: "111", Name: "Boston Red Sox", Abbreviation: "BOS"}, "Fenway Park"}
	giants   = club{teams.Team{ID: "137", Name: "San Francisco Giants", Abbreviation: "SF"}, "Oracle Park"}
	braves   = club{teams.Team{ID: "144", Name: "Atlanta Braves", Abbreviation: "ATL"}, "Truist Park"}
	rotation = [3][3][2]club{
		{{rockies, dodgers}, {yankees, redSox}, {giants, braves}},
		{{dodgers, giants}, {braves, rockies}, {redSox, yankees}},
		{{dodgers, rockies}, {braves, redSox}, {giants, yankees}},
	}
)

// Provider serves a deterministic schedule and stat lines for local runs.
// Every date maps onto a repeating ten-day cycle, so the schedule covers each
// travel label, a home team two games from a sweep, and the designated weak team.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// FetchSchedule returns the fixture games between start and end inclusive.
// Games dated before today are final; the rest are scheduled.
func (p *Provider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	dates, err := timeutil.DateRange(start, end)
	if err != nil {
		return nil, err
	}
	today := timeutil.FormatDate(p.now().UTC())

	buckets := make([]games.DateBucket, 0, len(dates))
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := cycleDay(date)
		if day == offDay {
			continue
		}
		block, number := day/3, day%3+1
		gs := make([]games.Game, 0, 3)
		for pair, matchup := range rotation[block] {
			gs = append(gs, buildGame(date, block, pair, number, matchup, date < today))
		}
		buckets = append(buckets, games.NewDateBucket(date, gs))
	}
	return buckets, nil
}

func buildGame(date string, block, pair, number int, matchup [2]club, completed bool) games.Game {
	home, away := matchup[0], matchup[1]
	g := games.Game{
		ID:                fmt.Sprintf("fx-%s-%d", strings.ReplaceAll(date, "-", ""), pair+1),
		Date:              date,
		StartTime:         date + "T23:05:00Z",
		Venue:             home.venue,
		HomeTeam:          home.team,
		AwayTeam:          away.team,
		Status:            games.StatusScheduled,
		Series:            &games.SeriesPosition{Number: number, Total: 3},
		SeriesDescription: "Regular Season",
		GameNumber:        1,
		HomeProbable:      probable(home.team, date),
		AwayProbable:      probable(away.team, date),
		Meta:              games.GameMeta{Provider: providerName, Season: date[:4]},
	}

	status := &games.SeriesStatus{IsVersus: true}
	for n := 1; n < number; n++ {
		if homeWins(block, pair, n) {
			status.HomeWins++
		} else {
			status.AwayWins++
		}
	}
	g.SeriesStatus = status

	if completed {
		g.Status = games.StatusFinal
		if homeWins(block, pair, number) {
			g.Score = &games.Score{Home: 5, Away: 2}
		} else {
			g.Score = &games.Score{Home: 3, Away: 4}
		}
	}
	return g
}

// homeWins scripts results: the first series of the cycle has the home side
// win the first two games, everything else alternates.
func homeWins(block, pair, number int) bool {
	if block == 0 && pair == 0 {
		return number < 3
	}
	return (block+pair+number)%2 == 0
}

func probable(team teams.Team, date string) *games.Pitcher {
	slot := (cycleDay(date) + int(seed(team.ID)%5)) % 5
	return &games.Pitcher{
		ID:   fmt.Sprintf("fx-%s-sp%d", team.ID, slot+1),
		Name: fmt.Sprintf("%s Starter %d", team.Abbreviation, slot+1),
	}
}

// FetchGameLog returns a start every five days inside the window.
func (p *Provider) FetchGameLog(ctx context.Context, pitcherID, start, end string) (pitchers.GameLog, error) {
	dates, err := timeutil.DateRange(start, end)
	if err != nil {
		return pitchers.GameLog{}, err
	}
	log := pitchers.GameLog{PitcherID: pitcherID, Appearances: []pitchers.Appearance{}}
	s := seed(pitcherID)
	for _, date := range dates {
		if (cycleDay(date)+int(s%5))%5 != 0 {
			continue
		}
		log.Appearances = append(log.Appearances, pitchers.Appearance{
			Date:           date,
			Strikeouts:     3 + int(s%6),
			BattersFaced:   22 + int(s%4),
			InningsPitched: "6.0",
			Outs:           18,
		})
	}
	return log, nil
}

// FetchSeasonLine returns a season aggregate consistent with FetchGameLog's rate.
func (p *Provider) FetchSeasonLine(ctx context.Context, pitcherID string, season int) (pitchers.SeasonLine, error) {
	s := seed(pitcherID)
	starts := 12
	return pitchers.SeasonLine{
		PitcherID:      pitcherID,
		Season:         season,
		Strikeouts:     starts * (3 + int(s%6)),
		BattersFaced:   starts * (22 + int(s%4)),
		InningsPitched: "72.0",
		GamesStarted:   starts,
		Outs:           starts * 18,
		Hits:           60 + int(s%25),
		Walks:          20 + int(s%10),
	}, nil
}

// FetchTeamBatting returns a plausible season hitting line.
func (p *Provider) FetchTeamBatting(ctx context.Context, teamID string, season int) (pitchers.TeamBatting, error) {
	s := seed(teamID)
	return pitchers.TeamBatting{
		TeamID:     teamID,
		Season:     season,
		Strikeouts: 450 + int(s%120),
		AtBats:     1800,
		Walks:      170,
		HitByPitch: 20,
		SacFlies:   15,
		SacBunts:   5,
		OPS:        0.690 + float64(s%120)/1000,
	}, nil
}

func cycleDay(date string) int {
	n, err := timeutil.DaysBetween(epoch, date)
	if err != nil {
		return 0
	}
	return ((n % cycleDays) + cycleDays) % cycleDays
}

func seed(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}
