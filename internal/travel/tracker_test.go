package travel

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/testutil"
)

var (
	teamA = testutil.Team("A", "Team A")
	teamB = testutil.Team("B", "Team B")
	teamC = testutil.Team("C", "Team C")
	teamD = testutil.Team("D", "Team D")
)

func TestTrackFirstGameHasNoHistory(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park A", teamA, teamB, testutil.Final(3, 2)),
	))
	g, ok := h.Game("1")
	if !ok {
		t.Fatalf("expected game to be tracked")
	}
	if g.Home.Travel.Label != NoHistory || g.Away.Travel.Label != NoHistory {
		t.Fatalf("expected NoHistory for first games, got %v / %v", g.Home.Travel.Label, g.Away.Travel.Label)
	}
}

func TestTrackSameVenueAwayScenario(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Venue X", teamB, teamA, testutil.Final(4, 1)),
		testutil.NewGame("2", "2024-05-02", "Venue X", teamB, teamA, testutil.Final(2, 6)),
	))
	g, _ := h.Game("2")
	if g.Away.Travel.Label != AwayToAwaySameVenue {
		t.Fatalf("expected same-venue away label, got %v", g.Away.Travel.Label)
	}
	if g.Home.Travel.Label != HomeToHomeNoRest {
		t.Fatalf("expected home stand label, got %v", g.Home.Travel.Label)
	}
}

func TestTrackHomeToAwayScenario(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park A", teamA, teamB),
		testutil.NewGame("2", "2024-05-02", "Park C", teamC, teamA),
	))
	g, _ := h.Game("2")
	if g.Away.Team.ID != "A" || g.Away.Travel.Label != HomeToAway {
		t.Fatalf("expected team A Home to Away, got %+v", g.Away)
	}
}

func TestTrackAwayToHomeScenarioPairsBothSides(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park C", teamC, teamB),
		testutil.NewGame("2", "2024-05-01", "Park D", teamD, teamA),
		testutil.NewGame("3", "2024-05-02", "Park B", teamB, teamA, testutil.Final(5, 3)),
	))
	g, _ := h.Game("3")
	if g.Home.Travel.Label != AwayToHome {
		t.Fatalf("expected home Away to Home, got %v", g.Home.Travel.Label)
	}
	if g.Away.Travel.Label != AwayToAway {
		t.Fatalf("expected away Away to Away, got %v", g.Away.Travel.Label)
	}
	if g.Home.OpponentLabel != AwayToAway || g.Away.OpponentLabel != AwayToHome {
		t.Fatalf("expected opponent labels mirrored, got %v / %v", g.Home.OpponentLabel, g.Away.OpponentLabel)
	}
}

func TestTrackRecordsAreComplementary(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park A", teamA, teamB, testutil.Final(3, 2)),
		testutil.NewGame("2", "2024-05-02", "Park A", teamA, teamB, testutil.Final(1, 7)),
		testutil.NewGame("3", "2024-05-03", "Park C", teamC, teamA),
	))
	for _, g := range h.Games() {
		if g.Home.IsHome == g.Away.IsHome {
			t.Fatalf("game %s: expected complementary isHome", g.Game.ID)
		}
		if (g.Home.Won == nil) != (g.Away.Won == nil) {
			t.Fatalf("game %s: expected won to be set on both sides or neither", g.Game.ID)
		}
		if g.Home.Won != nil && *g.Home.Won == *g.Away.Won {
			t.Fatalf("game %s: expected complementary won", g.Game.ID)
		}
	}
	if g, _ := h.Game("3"); g.Home.Won != nil {
		t.Fatalf("expected unplayed game to have nil won")
	}
}

func TestTrackDoubleheaderOrdersBySequenceAndInheritsLabel(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("10", "2024-05-01", "Park B", teamB, teamA),
		testutil.NewGame("9", "2024-05-02", "Park C", teamC, teamA, testutil.Doubleheader(2), testutil.StartingAt("2024-05-02T17:00:00Z")),
		testutil.NewGame("8", "2024-05-02", "Park C", teamC, teamA, testutil.Doubleheader(1), testutil.StartingAt("2024-05-02T17:00:00Z")),
	))
	records := h.Team("A")
	if len(records) != 3 {
		t.Fatalf("expected 3 records for team A, got %d", len(records))
	}
	if records[1].GameID != "8" || records[2].GameID != "9" {
		t.Fatalf("expected doubleheader ordered by sequence, got %s then %s", records[1].GameID, records[2].GameID)
	}
	if records[1].Travel.Label != AwayToAway || records[2].Travel.Label != AwayToAway {
		t.Fatalf("expected both doubleheader games to carry the opener's label, got %v / %v", records[1].Travel.Label, records[2].Travel.Label)
	}
}

func TestTrackSkipsPostponedGames(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park A", teamA, teamB),
		testutil.NewGame("2", "2024-05-02", "Park A", teamA, teamB, testutil.WithStatus(games.StatusPostponed)),
		testutil.NewGame("3", "2024-05-03", "Park A", teamA, teamB),
	))
	if _, ok := h.Game("2"); ok {
		t.Fatalf("expected postponed game to be skipped")
	}
	g, _ := h.Game("3")
	if g.Home.Travel.Label != HomeToHomeWithRest || g.Home.Travel.RestDays != 1 {
		t.Fatalf("expected rested home stand across the postponement, got %+v", g.Home.Travel)
	}
}

func TestTrackTeamsSortedByName(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park C", teamC, teamA),
	))
	ts := h.Teams()
	if len(ts) != 2 || ts[0].ID != "A" || ts[1].ID != "C" {
		t.Fatalf("expected teams sorted by name, got %+v", ts)
	}
}

func TestTrackIsDeterministic(t *testing.T) {
	buckets := testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park A", teamA, teamB, testutil.Final(3, 2)),
		testutil.NewGame("2", "2024-05-01", "Park C", teamC, teamD, testutil.Final(0, 1)),
		testutil.NewGame("3", "2024-05-02", "Park C", teamC, teamA, testutil.Final(4, 5)),
		testutil.NewGame("4", "2024-05-02", "Park B", teamB, teamD, testutil.Final(6, 2)),
	)
	first, _ := json.Marshal(Track(buckets).Games())
	second, _ := json.Marshal(Track(buckets).Games())
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output across runs")
	}
}

func TestNilHistoryIsEmpty(t *testing.T) {
	var h *History
	if len(h.Games()) != 0 || len(h.Records()) != 0 || len(h.Team("A")) != 0 || len(h.Teams()) != 0 {
		t.Fatalf("expected nil history to behave as empty")
	}
	if _, ok := h.Game("1"); ok {
		t.Fatalf("expected no game in nil history")
	}
}

func TestLastAppearanceIsStrictlyBefore(t *testing.T) {
	h := Track(testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Park A", teamA, teamB),
		testutil.NewGame("2", "2024-05-03", "Park C", teamC, teamA),
	))
	rec, ok := h.LastAppearance("A", "2024-05-03")
	if !ok || rec.GameID != "1" {
		t.Fatalf("expected game 1 as last appearance, got %+v ok=%v", rec, ok)
	}
	if _, ok := h.LastAppearance("A", "2024-05-01"); ok {
		t.Fatalf("expected no appearance before the first game")
	}
	if _, ok := (*History)(nil).LastAppearance("A", "2024-06-01"); ok {
		t.Fatalf("expected nil history to have no appearances")
	}
}
