package teams

import (
	"encoding/json"
	"testing"
)

func TestTeamValid(t *testing.T) {
	if !(Team{ID: "115", Name: "Colorado Rockies"}).Valid() {
		t.Fatalf("expected team with id and name to be valid")
	}
	if (Team{ID: "115"}).Valid() || (Team{Name: "Colorado Rockies"}).Valid() {
		t.Fatalf("expected partial teams to be invalid")
	}
}

func TestTeamJSONOmitsEmptyAbbreviation(t *testing.T) {
	raw, err := json.Marshal(Team{ID: "1", Name: "A"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"id":"1","name":"A"}` {
		t.Fatalf("unexpected json %s", raw)
	}
}
