package picks

import (
	"fmt"
	"sort"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
)

// TravelAdvantage picks home teams that are rested or settled against a
// visitor that traveled in overnight:
//   - home stand (with or without rest) vs Away to Away or Home to Away:
//     High when the home side rested, else Medium
//   - Away to Home vs Away to Away: Medium
//
// history must include today's games. Picks are ordered by start time.
func TravelAdvantage(today games.DateBucket, history *travel.History) []TravelPick {
	out := []TravelPick{}
	for _, g := range today.Games {
		if !g.Played() {
			continue
		}
		cg, ok := history.Game(g.ID)
		if !ok {
			continue
		}
		home, away := cg.Home.Travel.Label, cg.Away.Travel.Label

		var confidence Confidence
		switch {
		case home.HomeStand() && away.Traveling():
			confidence = ConfidenceMedium
			if home == travel.HomeToHomeWithRest {
				confidence = ConfidenceHigh
			}
		case home == travel.AwayToHome && away == travel.AwayToAway:
			confidence = ConfidenceMedium
		default:
			continue
		}

		p := TravelPick{
			Pick:         basePick(g, StrategyTravel, g.HomeTeam),
			HomeLabel:    home,
			AwayLabel:    away,
			HomeRestDays: cg.Home.Travel.RestDays,
		}
		p.Confidence = confidence
		p.Reason = fmt.Sprintf("%s (%s) vs %s (%s)", g.HomeTeam.Name, home, g.AwayTeam.Name, away)
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return startsBefore(out[i].StartTime, out[j].StartTime)
	})
	return out
}

// startsBefore orders RFC3339 start times; unparseable times sort last.
func startsBefore(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	switch {
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	return ta.Before(tb)
}
