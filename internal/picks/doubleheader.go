package picks

import (
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// DoubleheaderRule decides whether a game that is not its series' final game
// still qualifies for a sweep fade because of a doubleheader. Evidence returns
// the completed games that justify it, or nil.
type DoubleheaderRule interface {
	Name() string
	Evidence(g games.Game, lookback []games.DateBucket) []games.Game
}

// NoDoubleheaderRule never qualifies a game.
type NoDoubleheaderRule struct{}

func (NoDoubleheaderRule) Name() string { return "none" }

func (NoDoubleheaderRule) Evidence(games.Game, []games.DateBucket) []games.Game { return nil }

// YesterdayDoubleheaderLosses qualifies today's game when one side lost every
// one of two or more completed games against the same opponent on the previous
// day. The real games are returned so the sweep check runs on actual scores.
type YesterdayDoubleheaderLosses struct{}

func (YesterdayDoubleheaderLosses) Name() string { return "yesterday-doubleheader-losses" }

func (YesterdayDoubleheaderLosses) Evidence(g games.Game, lookback []games.DateBucket) []games.Game {
	yesterday, err := timeutil.AddDays(g.Date, -1)
	if err != nil {
		return nil
	}

	var headToHead []games.Game
	for _, bucket := range lookback {
		if bucket.Date != yesterday {
			continue
		}
		for _, prev := range bucket.Games {
			if prev.HasResult() && prev.Involves(g.HomeTeam.ID) && prev.Involves(g.AwayTeam.ID) {
				headToHead = append(headToHead, prev)
			}
		}
	}
	if len(headToHead) < 2 {
		return nil
	}
	for _, teamID := range []string{g.HomeTeam.ID, g.AwayTeam.ID} {
		if lostAll(headToHead, teamID) {
			return headToHead
		}
	}
	return nil
}
