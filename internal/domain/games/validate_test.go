package games

import (
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
)

func validGame(id string) Game {
	return Game{
		ID:       id,
		Venue:    "Coors Field",
		HomeTeam: teams.Team{ID: "115", Name: "Colorado Rockies"},
		AwayTeam: teams.Team{ID: "119", Name: "Los Angeles Dodgers"},
		Status:   StatusFinal,
	}
}

func TestSanitizeDropsMalformedGames(t *testing.T) {
	noVenue := validGame("2")
	noVenue.Venue = ""
	noTeam := validGame("3")
	noTeam.AwayTeam = teams.Team{}
	sameTeams := validGame("4")
	sameTeams.AwayTeam = sameTeams.HomeTeam
	noID := validGame("")

	clean, dropped := Sanitize([]DateBucket{{
		Date:  "2024-05-01",
		Games: []Game{validGame("1"), noVenue, noTeam, sameTeams, noID},
	}})

	if dropped != 4 {
		t.Fatalf("expected 4 dropped, got %d", dropped)
	}
	if len(clean) != 1 || len(clean[0].Games) != 1 || clean[0].Games[0].ID != "1" {
		t.Fatalf("unexpected clean buckets %+v", clean)
	}
}

func TestSanitizeStampsDateAndDefaultsStatus(t *testing.T) {
	g := validGame("1")
	g.Date = "1999-01-01"
	g.Status = ""

	clean, _ := Sanitize([]DateBucket{{Date: "2024-05-01", Games: []Game{g}}})
	got := clean[0].Games[0]
	if got.Date != "2024-05-01" {
		t.Fatalf("expected bucket date, got %s", got.Date)
	}
	if got.Status != StatusScheduled {
		t.Fatalf("expected scheduled default, got %s", got.Status)
	}
}

func TestSanitizeDropsBadBucketsAndOrders(t *testing.T) {
	clean, dropped := Sanitize([]DateBucket{
		{Date: "2024-05-03", Games: []Game{validGame("3")}},
		{Date: "not-a-date", Games: []Game{validGame("x"), validGame("y")}},
		{Date: "2024-05-01", Games: []Game{validGame("1")}},
		{Date: "2024-05-03", Games: []Game{validGame("4")}},
	})
	if dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", dropped)
	}
	if len(clean) != 2 || clean[0].Date != "2024-05-01" || clean[1].Date != "2024-05-03" {
		t.Fatalf("expected ordered merged buckets, got %+v", clean)
	}
	if len(clean[1].Games) != 2 {
		t.Fatalf("expected merged bucket with 2 games, got %d", len(clean[1].Games))
	}
}

func TestSanitizePrefersPlayedListingForDuplicateIDs(t *testing.T) {
	postponed := validGame("7")
	postponed.Status = StatusPostponed
	played := validGame("7")

	clean, dropped := Sanitize([]DateBucket{
		{Date: "2024-05-01", Games: []Game{postponed, validGame("8")}},
		{Date: "2024-05-02", Games: []Game{played}},
	})
	if dropped != 1 {
		t.Fatalf("expected duplicate dropped, got %d", dropped)
	}
	if len(clean[0].Games) != 1 || clean[0].Games[0].ID != "8" {
		t.Fatalf("expected postponed listing removed, got %+v", clean[0].Games)
	}
	if len(clean[1].Games) != 1 || clean[1].Games[0].Status != StatusFinal {
		t.Fatalf("expected played listing kept, got %+v", clean[1].Games)
	}

	clean, _ = Sanitize([]DateBucket{
		{Date: "2024-05-01", Games: []Game{played}},
		{Date: "2024-05-02", Games: []Game{postponed}},
	})
	if len(clean[0].Games) != 1 || len(clean[1].Games) != 0 {
		t.Fatalf("expected later postponed listing ignored, got %+v", clean)
	}
}
