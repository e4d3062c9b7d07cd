package pitchers

import "testing"

func TestEffectivePlateAppearances(t *testing.T) {
	b := TeamBatting{AtBats: 500, Walks: 40, HitByPitch: 5, SacFlies: 3, SacBunts: 2}
	if got := b.EffectivePlateAppearances(); got != 550 {
		t.Fatalf("expected summed components 550, got %d", got)
	}
	b.PlateAppearances = 560
	if got := b.EffectivePlateAppearances(); got != 560 {
		t.Fatalf("expected reported 560 to win, got %d", got)
	}
}

func TestAppearanceCounts(t *testing.T) {
	if (Appearance{Strikeouts: 4}).Counts() {
		t.Fatalf("appearance without batters faced must not count")
	}
	if !(Appearance{BattersFaced: 20}).Counts() {
		t.Fatalf("expected appearance with batters faced to count")
	}
}

func TestOutsFromInnings(t *testing.T) {
	cases := map[string]int{"6.0": 18, "5.1": 16, "5.2": 17, "7": 21, "": 0, "5.3": 0, "abc": 0, "-1.0": 0}
	for ip, want := range cases {
		if got := OutsFromInnings(ip); got != want {
			t.Fatalf("OutsFromInnings(%q) = %d, want %d", ip, got, want)
		}
	}
}

func TestAppearanceOutsRecordedPrefersReported(t *testing.T) {
	if got := (Appearance{Outs: 19, InningsPitched: "5.0"}).OutsRecorded(); got != 19 {
		t.Fatalf("expected reported outs, got %d", got)
	}
	if got := (Appearance{InningsPitched: "5.2"}).OutsRecorded(); got != 17 {
		t.Fatalf("expected outs from innings, got %d", got)
	}
}

func TestSeasonLineRates(t *testing.T) {
	line := SeasonLine{InningsPitched: "60.0", GamesStarted: 10, Hits: 50, Walks: 28}
	if got := line.OutsPerStart(); got != 18 {
		t.Fatalf("expected 18 outs per start, got %v", got)
	}
	if got := line.WHIP(); got != 1.3 {
		t.Fatalf("expected WHIP 1.3, got %v", got)
	}
	if (SeasonLine{Outs: 30}).OutsPerStart() != 0 || (SeasonLine{}).WHIP() != 0 {
		t.Fatalf("expected zero rates without starts or outs")
	}
}
