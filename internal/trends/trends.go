// Package trends aggregates classified games into win/loss tallies per travel
// type and per travel-type matchup.
package trends

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
)

// ErrUntrackedLabel is returned when a caller asks for a label the aggregator does not tally.
var ErrUntrackedLabel = errors.New("travel label is not tracked")

// ErrUnknownMatchup is returned for a matchup key outside the tracked pairs.
var ErrUnknownMatchup = errors.New("unknown matchup")

var trackedLabels = []travel.Label{
	travel.HomeToAway,
	travel.AwayToAway,
	travel.AwayToHome,
	travel.HomeToHomeNoRest,
	travel.HomeToHomeWithRest,
}

// Pair is an ordered matchup of a traveling label against a home label.
type Pair struct {
	First  travel.Label
	Second travel.Label
}

// Key is the display key, "<First> vs <Second>".
func (p Pair) Key() string {
	return p.First.String() + " vs " + p.Second.String()
}

var pairs = func() []Pair {
	var out []Pair
	for _, first := range []travel.Label{travel.HomeToAway, travel.AwayToAway} {
		for _, second := range []travel.Label{travel.AwayToHome, travel.HomeToHomeNoRest, travel.HomeToHomeWithRest} {
			out = append(out, Pair{First: first, Second: second})
		}
	}
	return out
}()

// TrackedLabels returns the labels that receive per-type tallies.
func TrackedLabels() []travel.Label {
	return append([]travel.Label(nil), trackedLabels...)
}

// Pairs returns the six tracked matchups.
func Pairs() []Pair {
	return append([]Pair(nil), pairs...)
}

// Tracked reports whether l receives a per-type tally.
func Tracked(l travel.Label) bool {
	for _, t := range trackedLabels {
		if t == l {
			return true
		}
	}
	return false
}

// PairFor resolves a matchup key to its pair.
func PairFor(key string) (Pair, error) {
	for _, p := range pairs {
		if p.Key() == key {
			return p, nil
		}
	}
	return Pair{}, fmt.Errorf("%w: %q", ErrUnknownMatchup, key)
}

// MatchupKey builds the key for a tracked pair.
func MatchupKey(first, second travel.Label) (string, error) {
	for _, p := range pairs {
		if p.First == first && p.Second == second {
			return p.Key(), nil
		}
	}
	return "", fmt.Errorf("%w: %s vs %s", ErrUntrackedLabel, first, second)
}

// Percentage returns wins/(wins+losses), or 0 when nothing has been decided.
func Percentage(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}
