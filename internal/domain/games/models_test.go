package games

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
)

func TestGameStatusValues(t *testing.T) {
	expected := map[GameStatus]string{
		StatusScheduled: "SCHEDULED",
		StatusLive:      "LIVE",
		StatusFinal:     "FINAL",
		StatusPostponed: "POSTPONED",
		StatusCanceled:  "CANCELED",
	}

	for status, want := range expected {
		if string(status) != want {
			t.Fatalf("expected %q got %q", want, status)
		}
	}
}

func TestGameJSONTags(t *testing.T) {
	gameType := reflect.TypeOf(Game{})
	fields := map[string]string{
		"ID":           "id",
		"Date":         "date",
		"StartTime":    "startTime",
		"Venue":        "venue",
		"HomeTeam":     "homeTeam",
		"AwayTeam":     "awayTeam",
		"Status":       "status",
		"Score":        "score,omitempty",
		"Series":       "series,omitempty",
		"HomeProbable": "homeProbablePitcher,omitempty",
	}

	for name, tag := range fields {
		field, ok := gameType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != tag {
			t.Fatalf("field %s expected json tag %s, got %s", name, tag, jsonTag)
		}
	}
}

func TestHomeWonAndLost(t *testing.T) {
	g := Game{
		HomeTeam: teams.Team{ID: "h", Name: "Home"},
		AwayTeam: teams.Team{ID: "a", Name: "Away"},
		Status:   StatusFinal,
		Score:    &Score{Home: 2, Away: 5},
	}
	won, ok := g.HomeWon()
	if !ok || won {
		t.Fatalf("expected away win, got won=%v ok=%v", won, ok)
	}
	if !g.Lost("h") || g.Lost("a") || g.Lost("other") {
		t.Fatalf("unexpected Lost results")
	}

	g.Status = StatusLive
	if _, ok := g.HomeWon(); ok {
		t.Fatalf("expected live game to have no result")
	}

	g.Status = StatusFinal
	g.Score = &Score{Home: 3, Away: 3}
	if g.HasResult() {
		t.Fatalf("expected tied score to carry no result")
	}
}

func TestSeriesPositionFinalGame(t *testing.T) {
	var nilPos *SeriesPosition
	if nilPos.IsFinalGame() {
		t.Fatalf("nil position is never final")
	}
	if !(&SeriesPosition{Number: 3, Total: 3}).IsFinalGame() {
		t.Fatalf("expected 3 of 3 to be final")
	}
	if (&SeriesPosition{Number: 2, Total: 3}).IsFinalGame() {
		t.Fatalf("expected 2 of 3 not final")
	}
}

func TestPlayedAndOpponent(t *testing.T) {
	g := Game{HomeTeam: teams.Team{ID: "h"}, AwayTeam: teams.Team{ID: "a"}, Status: StatusPostponed}
	if g.Played() {
		t.Fatalf("postponed game should not count as played")
	}
	if g.Opponent("h").ID != "a" || g.Opponent("a").ID != "h" {
		t.Fatalf("unexpected opponent lookup")
	}
	if !g.Involves("a") || g.Involves("x") {
		t.Fatalf("unexpected Involves result")
	}
}

func TestNewDateBucketNeverNil(t *testing.T) {
	raw, err := json.Marshal(NewDateBucket("2024-05-01", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"date":"2024-05-01","games":[]}` {
		t.Fatalf("expected empty games array, got %s", raw)
	}
}
