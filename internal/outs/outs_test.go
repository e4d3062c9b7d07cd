package outs

import (
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/odds"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/pitchers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/krate"
	"github.com/preston-bernstein/mlb-travel-picks/internal/picks"
	"github.com/preston-bernstein/mlb-travel-picks/internal/testutil"
)

const asOf = "2024-06-01"

var (
	rockies = testutil.Team("115", "Colorado Rockies")
	dodgers = testutil.Team("119", "Los Angeles Dodgers")
)

func slate(home, away *games.Pitcher) []games.Game {
	return []games.Game{testutil.NewGame("g1", asOf, "Coors Field", rockies, dodgers, testutil.WithProbables(home, away))}
}

func workhorse() krate.Inputs {
	var apps []pitchers.Appearance
	for _, d := range []string{"2024-05-01", "2024-05-06", "2024-05-11", "2024-05-16", "2024-05-21", "2024-05-26", asOf} {
		apps = append(apps, pitchers.Appearance{Date: d, Strikeouts: 6, BattersFaced: 25, Outs: 21})
	}
	// the oldest start and today's must both be left out
	apps[0].Outs = 3
	apps[6].Outs = 3
	return krate.Inputs{
		Logs: map[string]pitchers.GameLog{"p1": {PitcherID: "p1", Appearances: apps}},
		Seasons: map[string]pitchers.SeasonLine{
			"p1": {PitcherID: "p1", Outs: 180, GamesStarted: 10, Hits: 50, Walks: 28, Strikeouts: 60, BattersFaced: 240},
		},
		Teams: map[string]pitchers.TeamBatting{dodgers.ID: {TeamID: dodgers.ID, OPS: 0.700}},
	}
}

func props(home, away float64) []odds.PitcherProp {
	return []odds.PitcherProp{
		{EventID: "e1", Market: odds.MarketPitcherOuts, Pitcher: "Home Ace", Point: home},
		{EventID: "e1", Market: odds.MarketPitcherOuts, Pitcher: "Road Arm", Point: away},
	}
}

func TestProjectWeighsEveryFactor(t *testing.T) {
	home := &games.Pitcher{ID: "p1", Name: "Home Ace"}
	away := &games.Pitcher{ID: "p2", Name: "Road Arm"}
	lines := map[string]odds.Line{"g1": {GameID: "g1", EventID: "e1"}}

	got := NewProjector(Params{}).Project(slate(home, away), workhorse(), lines, props(17.5, 15.5), asOf)
	if len(got) != 2 {
		t.Fatalf("expected both starters, got %d", len(got))
	}

	road, ace := got[0], got[1]
	if road.Pitcher.ID != "p2" || road.Home || ace.Pitcher.ID != "p1" || !ace.Home {
		t.Fatalf("expected away starter first, got %+v / %+v", road.Pitcher, ace.Pitcher)
	}

	// 18 season + 1.2 recent + 0.3 opponent OPS + 0 WHIP + 0.8 home + 1.2 strikeouts
	if ace.Outs != 21.5 || ace.SeasonAverage != 18 || ace.RecentAverage != 21 || len(ace.RecentGames) != 5 {
		t.Fatalf("unexpected projection %+v", ace)
	}
	if ace.RecentGames[0].Date != "2024-05-26" {
		t.Fatalf("expected newest start first, got %+v", ace.RecentGames)
	}
	if len(ace.Factors) != 6 || ace.Confidence != picks.ConfidenceHigh {
		t.Fatalf("unexpected factors or confidence %+v", ace)
	}
	if ace.Recommendation != RecommendOver || ace.Edge != 4 || ace.BetConfidence != picks.ConfidenceHigh || !ace.IsBet() {
		t.Fatalf("expected a high-confidence over, got %+v", ace)
	}

	// baseline 15 on the road with nothing else known
	if road.Outs != 14.2 || road.Confidence != picks.ConfidenceLow {
		t.Fatalf("unexpected baseline projection %+v", road)
	}
	if road.Recommendation != RecommendNone || road.Edge != -1.3 || road.IsBet() {
		t.Fatalf("expected no bet inside the minimum edge, got %+v", road)
	}
	if Bets(got) != 1 {
		t.Fatalf("expected one bet, got %d", Bets(got))
	}
}

func TestProjectUnderAndMissingLine(t *testing.T) {
	away := &games.Pitcher{ID: "p2", Name: "Road Arm"}
	lines := map[string]odds.Line{"g1": {GameID: "g1", EventID: "e1"}}

	got := NewProjector(Params{}).Project(slate(nil, away), krate.Inputs{}, lines, props(17.5, 17.5), asOf)
	if len(got) != 1 || got[0].Recommendation != RecommendUnder || got[0].BetConfidence != picks.ConfidenceHigh {
		t.Fatalf("expected an under on the road starter, got %+v", got)
	}

	got = NewProjector(Params{}).Project(slate(nil, away), krate.Inputs{}, nil, props(17.5, 17.5), asOf)
	if got[0].Recommendation != RecommendNoLine || got[0].Line != nil {
		t.Fatalf("expected no line without a matched event, got %+v", got[0])
	}
}

func TestProjectClampsAndSkipsPostponed(t *testing.T) {
	home := &games.Pitcher{ID: "p1", Name: "Home Ace"}
	in := krate.Inputs{Seasons: map[string]pitchers.SeasonLine{"p1": {Outs: 400, GamesStarted: 10}}}

	got := NewProjector(Params{}).Project(slate(home, nil), in, nil, nil, asOf)
	if len(got) != 1 || got[0].Outs != 27 {
		t.Fatalf("expected projection clamped to 27 outs, got %+v", got)
	}

	postponed := slate(home, nil)
	postponed[0].Status = games.StatusPostponed
	if got := NewProjector(Params{}).Project(postponed, in, nil, nil, asOf); len(got) != 0 {
		t.Fatalf("expected postponed games skipped, got %+v", got)
	}
}

func TestStrikeoutAdjustment(t *testing.T) {
	pr := NewProjector(Params{})
	cases := map[float64]float64{0.30: highKBonus, 0.26: goodKBonus, 0.20: 0, 0.15: lowKPenalty}
	for rate, want := range cases {
		if got := pr.strikeoutAdjustment(rate); got != want {
			t.Fatalf("strikeoutAdjustment(%v) = %v, want %v", rate, got, want)
		}
	}
}
