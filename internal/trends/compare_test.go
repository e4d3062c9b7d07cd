package trends

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
)

func TestCompareLeader(t *testing.T) {
	cases := []struct {
		first, second Tally
		want          Leader
	}{
		{Tally{}, Tally{}, LeaderNoData},
		{Tally{Wins: 2, Losses: 1}, Tally{Wins: 1, Losses: 2}, LeaderFirst},
		{Tally{Wins: 0, Losses: 1}, Tally{Wins: 1}, LeaderSecond},
		{Tally{Wins: 1, Losses: 1}, Tally{Wins: 2, Losses: 2}, LeaderTie},
	}
	for _, tc := range cases {
		m := MatchupStats{First: travel.HomeToAway, Second: travel.AwayToHome, FirstTally: tc.first, SecondTally: tc.second}
		if got := m.Compare().Leader; got != tc.want {
			t.Fatalf("expected %s for %+v vs %+v, got %s", tc.want, tc.first, tc.second, got)
		}
	}
}

func TestComparisonsFollowPairOrder(t *testing.T) {
	cmp := Compute(awayToAwayVsAwayToHome(5, 3)).Comparisons()
	if len(cmp) != 6 {
		t.Fatalf("expected 6 comparisons, got %d", len(cmp))
	}
	if cmp[0].Key != "Home to Away vs Away to Home" {
		t.Fatalf("unexpected first key %s", cmp[0].Key)
	}
	if cmp[3].Key != "Away to Away vs Away to Home" || cmp[3].Leader != LeaderSecond || cmp[3].GameCount != 1 {
		t.Fatalf("unexpected comparison %+v", cmp[3])
	}
}

func TestFilterGames(t *testing.T) {
	games := awayToAwayVsAwayToHome(5, 3)

	got, err := FilterGames(games, Filter{Comparison: "Away to Away vs Away to Home"})
	if err != nil || len(got) != 1 || got[0].Game.ID != "3" {
		t.Fatalf("expected comparison filter to return game 3, got %+v (%v)", got, err)
	}

	label := travel.AwayToHome
	got, _ = FilterGames(games, Filter{Label: &label, TeamID: "A"})
	if len(got) != 1 {
		t.Fatalf("expected label+team filter to match game 3, got %d", len(got))
	}

	got, _ = FilterGames(games, Filter{TeamID: "C"})
	if len(got) != 1 || got[0].Game.ID != "1" {
		t.Fatalf("expected team filter to return game 1, got %+v", got)
	}
}

func TestFilterGamesRejectsUnknownCriteria(t *testing.T) {
	if _, err := FilterGames(nil, Filter{Comparison: "Away to Moon vs Home"}); !errors.Is(err, ErrUnknownMatchup) {
		t.Fatalf("expected ErrUnknownMatchup, got %v", err)
	}
	label := travel.RestDayAway
	if _, err := FilterGames(nil, Filter{Label: &label}); !errors.Is(err, ErrUntrackedLabel) {
		t.Fatalf("expected ErrUntrackedLabel, got %v", err)
	}
}
