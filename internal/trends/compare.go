package trends

import (
	"fmt"

	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
)

// Leader names which side of a matchup has the better win percentage.
type Leader string

const (
	LeaderFirst  Leader = "first"
	LeaderSecond Leader = "second"
	LeaderTie    Leader = "tie"
	LeaderNoData Leader = "no data"
)

// Comparison is the side-by-side view of one matchup.
type Comparison struct {
	Key         string       `json:"key"`
	First       travel.Label `json:"firstType"`
	Second      travel.Label `json:"secondType"`
	FirstStats  TravelStats  `json:"firstStats"`
	SecondStats TravelStats  `json:"secondStats"`
	Leader      Leader       `json:"leader"`
	GameCount   int          `json:"gameCount"`
}

// Compare builds the comparison view for m.
func (m MatchupStats) Compare() Comparison {
	first, second := m.FirstTally.Stats(), m.SecondTally.Stats()
	c := Comparison{
		Key:         Pair{First: m.First, Second: m.Second}.Key(),
		First:       m.First,
		Second:      m.Second,
		FirstStats:  first,
		SecondStats: second,
		GameCount:   len(m.Games),
	}
	switch {
	case first.Total == 0 && second.Total == 0:
		c.Leader = LeaderNoData
	case first.Percentage > second.Percentage:
		c.Leader = LeaderFirst
	case second.Percentage > first.Percentage:
		c.Leader = LeaderSecond
	default:
		c.Leader = LeaderTie
	}
	return c
}

// Comparisons returns the comparison view of every tracked pair in pair order.
func (a Aggregates) Comparisons() []Comparison {
	out := make([]Comparison, 0, len(pairs))
	for _, p := range pairs {
		m, ok := a.Matchups[p.Key()]
		if !ok {
			m = MatchupStats{First: p.First, Second: p.Second}
		}
		out = append(out, m.Compare())
	}
	return out
}

// Filter narrows the game list behind the dashboard's "view games" drill-down.
// Zero values disable a criterion.
type Filter struct {
	Label      *travel.Label
	Comparison string
	TeamID     string
}

// FilterGames returns the completed games matching f, input order preserved.
// A label filter matches games where either side counted toward that label's
// tally; a comparison filter matches games that fed that matchup.
func FilterGames(all []travel.ClassifiedGame, f Filter) ([]travel.ClassifiedGame, error) {
	var pair *Pair
	if f.Comparison != "" {
		p, err := PairFor(f.Comparison)
		if err != nil {
			return nil, err
		}
		pair = &p
	}
	if f.Label != nil && !Tracked(*f.Label) {
		return nil, fmt.Errorf("%w: %s", ErrUntrackedLabel, *f.Label)
	}

	out := []travel.ClassifiedGame{}
	for _, g := range all {
		if !completed(g) {
			continue
		}
		if f.TeamID != "" && !g.Game.Involves(f.TeamID) {
			continue
		}
		if pair != nil {
			if _, _, ok := orient(g, *pair); !ok {
				continue
			}
		}
		if f.Label != nil && !sideCounts(g, *f.Label) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func sideCounts(g travel.ClassifiedGame, l travel.Label) bool {
	for _, side := range []travel.TeamGameRecord{g.Home, g.Away} {
		if side.Travel.Label == l && countsTowardType(side) {
			return true
		}
	}
	return false
}
