package trends

import (
	"fmt"

	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
)

// Tally is a plain win/loss count.
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (t *Tally) add(won bool) {
	if won {
		t.Wins++
	} else {
		t.Losses++
	}
}

// Stats expands the tally with its total and win percentage.
func (t Tally) Stats() TravelStats {
	return TravelStats{
		Wins:       t.Wins,
		Losses:     t.Losses,
		Total:      t.Wins + t.Losses,
		Percentage: Percentage(t.Wins, t.Losses),
	}
}

// TravelStats is the aggregate for one travel label.
type TravelStats struct {
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// MatchupStats is the aggregate for one ordered pair of labels.
type MatchupStats struct {
	First       travel.Label            `json:"firstType"`
	Second      travel.Label            `json:"secondType"`
	FirstTally  Tally                   `json:"first"`
	SecondTally Tally                   `json:"second"`
	Games       []travel.ClassifiedGame `json:"games"`
}

// Aggregates is the output of one Compute call.
type Aggregates struct {
	ByType   map[travel.Label]TravelStats `json:"byType"`
	Matchups map[string]MatchupStats      `json:"matchups"`
}

// Compute tallies completed games per travel label and per tracked matchup.
// It keeps no state between calls. A game id seen twice is counted once. A
// home-stand label only counts when the opponent arrived traveling; same-venue
// away games and rest markers never count.
func Compute(games []travel.ClassifiedGame) Aggregates {
	byType := make(map[travel.Label]*Tally, len(trackedLabels))
	for _, l := range trackedLabels {
		byType[l] = &Tally{}
	}
	matchups := make(map[string]*MatchupStats, len(pairs))
	for _, p := range pairs {
		matchups[p.Key()] = &MatchupStats{First: p.First, Second: p.Second, Games: []travel.ClassifiedGame{}}
	}

	seen := make(map[string]bool, len(games))
	for _, g := range games {
		if !completed(g) || seen[g.Game.ID] {
			continue
		}
		seen[g.Game.ID] = true
		for _, side := range []travel.TeamGameRecord{g.Home, g.Away} {
			if countsTowardType(side) {
				byType[side.Travel.Label].add(*side.Won)
			}
		}

		for _, p := range pairs {
			first, second, ok := orient(g, p)
			if !ok {
				continue
			}
			m := matchups[p.Key()]
			m.FirstTally.add(*first.Won)
			m.SecondTally.add(*second.Won)
			m.Games = append(m.Games, g)
			break
		}
	}

	out := Aggregates{
		ByType:   make(map[travel.Label]TravelStats, len(byType)),
		Matchups: make(map[string]MatchupStats, len(matchups)),
	}
	for l, t := range byType {
		out.ByType[l] = t.Stats()
	}
	for k, m := range matchups {
		out.Matchups[k] = *m
	}
	return out
}

// Type returns the stats for a tracked label.
func (a Aggregates) Type(l travel.Label) (TravelStats, error) {
	if !Tracked(l) {
		return TravelStats{}, fmt.Errorf("%w: %s", ErrUntrackedLabel, l)
	}
	return a.ByType[l], nil
}

// Matchup returns the stats for a tracked pair.
func (a Aggregates) Matchup(first, second travel.Label) (MatchupStats, error) {
	key, err := MatchupKey(first, second)
	if err != nil {
		return MatchupStats{}, err
	}
	return a.Matchups[key], nil
}

func completed(g travel.ClassifiedGame) bool {
	return g.Home.Won != nil && g.Away.Won != nil
}

func countsTowardType(r travel.TeamGameRecord) bool {
	if !Tracked(r.Travel.Label) {
		return false
	}
	if r.Travel.Label.HomeStand() {
		return r.OpponentLabel.Traveling()
	}
	return true
}

// orient returns the game's sides in pair order when they match p.
func orient(g travel.ClassifiedGame, p Pair) (first, second travel.TeamGameRecord, ok bool) {
	home, away := g.Home.Travel.Label, g.Away.Travel.Label
	switch {
	case home == p.First && away == p.Second:
		return g.Home, g.Away, true
	case away == p.First && home == p.Second:
		return g.Away, g.Home, true
	}
	return travel.TeamGameRecord{}, travel.TeamGameRecord{}, false
}
