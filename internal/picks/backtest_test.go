package picks

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/mlb-travel-picks/internal/testutil"
)

func TestBacktestSweeps(t *testing.T) {
	season := testutil.Buckets(
		// C lost 1 and 2, then won the finale: sweep prevented
		testutil.NewGame("1", "2024-05-01", "Park C", teamC, teamD, testutil.InSeries(1, 3, ""), testutil.Final(1, 4)),
		testutil.NewGame("2", "2024-05-02", "Park C", teamC, teamD, testutil.InSeries(2, 3, ""), testutil.Final(2, 3)),
		testutil.NewGame("3", "2024-05-03", "Park C", teamC, teamD, testutil.InSeries(3, 3, ""), testutil.Final(6, 1)),
		// B lost all three on the road: sweep completed
		testutil.NewGame("4", "2024-05-01", "Park A", teamA, teamB, testutil.InSeries(1, 3, ""), testutil.Final(5, 1)),
		testutil.NewGame("5", "2024-05-02", "Park A", teamA, teamB, testutil.InSeries(2, 3, ""), testutil.Final(5, 2)),
		testutil.NewGame("6", "2024-05-03", "Park A", teamA, teamB, testutil.InSeries(3, 3, ""), testutil.Final(5, 3)),
		// two-game set never qualifies
		testutil.NewGame("7", "2024-05-04", "Park A", teamA, teamC, testutil.InSeries(1, 2, ""), testutil.Final(5, 3)),
		testutil.NewGame("8", "2024-05-05", "Park A", teamA, teamC, testutil.InSeries(2, 2, ""), testutil.Final(5, 3)),
	)

	got := BacktestSweeps(season, decimal.NewFromFloat(2.25), decimal.NewFromInt(100))
	if got.Total != 2 || got.SweepsPrevented != 1 || got.SweepsCompleted != 1 {
		t.Fatalf("unexpected counts %+v", got)
	}
	if got.WinPercentage != 0.5 {
		t.Fatalf("expected 50%% win rate, got %v", got.WinPercentage)
	}
	// +125 on the prevented sweep, -100 on the completed one
	if !got.Profit.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected profit 25, got %s", got.Profit)
	}
	if !got.ROI.Equal(decimal.NewFromFloat(12.5)) {
		t.Fatalf("expected ROI 12.5, got %s", got.ROI)
	}
	if got.Opportunities[0].Team.ID != "C" || !got.Opportunities[0].Prevented {
		t.Fatalf("unexpected first outcome %+v", got.Opportunities[0])
	}
}

func TestBacktestSweepsSplitsRepeatedMatchups(t *testing.T) {
	season := testutil.Buckets(
		// April: C dropped the first two, then won the finale
		testutil.NewGame("1", "2024-04-10", "Park C", teamC, teamD, testutil.InSeries(1, 3, "Regular Season"), testutil.Final(1, 4)),
		testutil.NewGame("2", "2024-04-11", "Park C", teamC, teamD, testutil.InSeries(2, 3, "Regular Season"), testutil.Final(2, 3)),
		testutil.NewGame("3", "2024-04-12", "Park C", teamC, teamD, testutil.InSeries(3, 3, "Regular Season"), testutil.Final(6, 1)),
		// August: same venue and clubs, C won all three
		testutil.NewGame("4", "2024-08-20", "Park C", teamC, teamD, testutil.InSeries(1, 3, "Regular Season"), testutil.Final(5, 1)),
		testutil.NewGame("5", "2024-08-21", "Park C", teamC, teamD, testutil.InSeries(2, 3, "Regular Season"), testutil.Final(5, 2)),
		testutil.NewGame("6", "2024-08-22", "Park C", teamC, teamD, testutil.InSeries(3, 3, "Regular Season"), testutil.Final(5, 3)),
	)

	got := BacktestSweeps(season, decimal.NewFromFloat(2.25), decimal.NewFromInt(100))
	if got.Total != 1 || got.SweepsPrevented != 1 || got.SweepsCompleted != 0 {
		t.Fatalf("expected the April series only, got %+v", got)
	}
	o := got.Opportunities[0]
	if o.GameID != "3" || o.Team.ID != "C" || o.PreviousLosses != 2 {
		t.Fatalf("unexpected outcome %+v", o)
	}
}

func TestBacktestSweepsEmptySeason(t *testing.T) {
	got := BacktestSweeps(nil, decimal.NewFromFloat(2.25), decimal.NewFromInt(100))
	if got.Total != 0 || !got.ROI.IsZero() || got.Opportunities == nil {
		t.Fatalf("expected empty backtest, got %+v", got)
	}
}

func TestBacktestWeakTeam(t *testing.T) {
	season := testutil.Buckets(
		testutil.NewGame("1", "2024-05-01", "Coors Field", rockies, dodgers, testutil.Final(2, 8)),
		testutil.NewGame("2", "2024-05-02", "Coors Field", rockies, dodgers, testutil.Final(4, 5)),
		testutil.NewGame("3", "2024-05-03", "Dodger Stadium", dodgers, rockies, testutil.Final(1, 3)),
		testutil.NewGame("4", "2024-05-04", "Dodger Stadium", dodgers, rockies),
	)

	got := BacktestWeakTeam(season, weakTeam)
	if got.Total != 3 || got.Wins != 1 || got.Losses != 2 {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.Covers != 1 || !got.Games[0].Covered || got.Games[1].Covered {
		t.Fatalf("expected only the six-run loss to cover, got %+v", got.Games)
	}
	if got.CoverPercentage != 1.0/3.0 {
		t.Fatalf("unexpected cover percentage %v", got.CoverPercentage)
	}
	if !got.Games[0].WeakAtHome || got.Games[2].WeakAtHome {
		t.Fatalf("unexpected home flags %+v", got.Games)
	}
}
