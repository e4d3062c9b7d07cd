package picks

import (
	"fmt"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
)

// WeakTeam designates the team faded on the run line.
type WeakTeam struct {
	TeamID     string
	Spread     string
	HomeReason string
	AwayReason string
}

// FadeWeakTeam recommends the opponent at the spread in every game the weak team plays.
func FadeWeakTeam(today games.DateBucket, weak WeakTeam) []WeakTeamPick {
	out := []WeakTeamPick{}
	if weak.TeamID == "" {
		return out
	}
	for _, g := range today.Games {
		if !g.Played() || !g.Involves(weak.TeamID) {
			continue
		}
		atHome := g.HomeTeam.ID == weak.TeamID
		opponent := g.Opponent(weak.TeamID)
		faded := g.HomeTeam
		reason := weak.HomeReason
		if !atHome {
			faded = g.AwayTeam
			reason = weak.AwayReason
		}

		p := WeakTeamPick{
			Pick:       basePick(g, StrategyWeakTeam, opponent),
			Spread:     weak.Spread,
			Opponent:   opponent,
			WeakTeam:   faded,
			WeakAtHome: atHome,
		}
		p.RecommendedSide = fmt.Sprintf("%s %s", opponent.Name, weak.Spread)
		p.Reason = reason
		p.Confidence = ConfidenceMedium
		out = append(out, p)
	}
	return out
}
