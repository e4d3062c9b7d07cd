package picks

import (
	"fmt"
	"sort"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// maxSeriesGapDays is the widest calendar gap between two games of one series.
// It tolerates a single rained-out day in the middle of a set.
const maxSeriesGapDays = 2

// SeriesKey groups games into a series by home team, away team and description.
func SeriesKey(g games.Game) string {
	desc := g.SeriesDescription
	if desc == "" {
		desc = "series"
	}
	return fmt.Sprintf("%s-%s-%s", g.HomeTeam.ID, g.AwayTeam.ID, desc)
}

// FadeTheSweep backs a team that lost every one of at least two completed
// earlier games of a series, in the series' final game. A doubleheader rule
// can qualify a game that is not the final one. lookback holds the buckets
// before today. A second pass reads the upstream series tally; when both
// passes fire for a game, the series-tally pick is kept.
func FadeTheSweep(today games.DateBucket, lookback []games.DateBucket, rule DoubleheaderRule) []SweepPick {
	if rule == nil {
		rule = NoDoubleheaderRule{}
	}

	series := make(map[string][]games.Game)
	for _, bucket := range lookback {
		if bucket.Date >= today.Date {
			continue
		}
		for _, g := range bucket.Games {
			series[SeriesKey(g)] = append(series[SeriesKey(g)], g)
		}
	}

	merged := newPickSet()

	for _, g := range today.Games {
		if !g.Played() {
			continue
		}
		evidence := rule.Evidence(g, lookback)
		if !g.Series.IsFinalGame() && len(evidence) == 0 {
			continue
		}

		prior := priorSeriesResults(g, series[SeriesKey(g)], evidence)
		if len(prior) < 2 {
			continue
		}

		source := SweepFromSeries
		if !g.Series.IsFinalGame() {
			source = SweepFromDoubleheader
		}
		switch {
		case lostAll(prior, g.HomeTeam.ID):
			merged.put(sweepPick(g, g.HomeTeam, g.AwayTeam, len(prior), source))
		case lostAll(prior, g.AwayTeam.ID):
			merged.put(sweepPick(g, g.AwayTeam, g.HomeTeam, len(prior), source))
		}
	}

	for _, g := range today.Games {
		if !g.Played() || !g.Series.IsFinalGame() || g.SeriesStatus == nil || !g.SeriesStatus.IsVersus {
			continue
		}
		status := g.SeriesStatus
		switch {
		case status.HomeWins == 0 && status.AwayWins >= 2:
			merged.put(sweepPick(g, g.HomeTeam, g.AwayTeam, status.AwayWins, SweepFromSeriesStatus))
		case status.AwayWins == 0 && status.HomeWins >= 2:
			merged.put(sweepPick(g, g.AwayTeam, g.HomeTeam, status.HomeWins, SweepFromSeriesStatus))
		}
	}

	return merged.list()
}

// priorSeriesResults returns the completed series games before g, plus any
// doubleheader evidence, without duplicates.
func priorSeriesResults(g games.Game, seriesGames []games.Game, evidence []games.Game) []games.Game {
	seen := make(map[string]bool)
	var out []games.Game
	add := func(prev games.Game) {
		if seen[prev.ID] || prev.ID == g.ID || !prev.HasResult() {
			return
		}
		seen[prev.ID] = true
		out = append(out, prev)
	}
	for _, prev := range seriesRun(g, seriesGames) {
		add(prev)
	}
	for _, prev := range evidence {
		add(prev)
	}
	return out
}

// seriesRun returns the games of g's own series that came before it, latest
// first. The same two clubs meet under one series key several times a season,
// so the walk back from g stops as soon as the series number stops falling or
// the calendar gap grows past maxSeriesGapDays.
func seriesRun(g games.Game, seriesGames []games.Game) []games.Game {
	if g.Series == nil {
		return nil
	}
	candidates := make([]games.Game, 0, len(seriesGames))
	for _, prev := range seriesGames {
		if prev.ID == g.ID || prev.Series == nil || prev.Date > g.Date {
			continue
		}
		candidates = append(candidates, prev)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Date != candidates[j].Date {
			return candidates[i].Date > candidates[j].Date
		}
		return candidates[i].Series.Number > candidates[j].Series.Number
	})

	var run []games.Game
	last := g
	for _, prev := range candidates {
		if prev.Series.Number >= last.Series.Number {
			if prev.Date == g.Date {
				continue
			}
			break
		}
		gap, err := timeutil.DaysBetween(prev.Date, last.Date)
		if err != nil || gap > maxSeriesGapDays {
			break
		}
		run = append(run, prev)
		last = prev
	}
	return run
}

func lostAll(results []games.Game, teamID string) bool {
	for _, g := range results {
		if !g.Lost(teamID) {
			return false
		}
	}
	return len(results) > 0
}

func sweepPick(g games.Game, swept, opponent teams.Team, losses int, source SweepSource) SweepPick {
	p := SweepPick{
		Pick:           basePick(g, StrategySweep, swept),
		PreviousLosses: losses,
		SeriesKey:      SeriesKey(g),
		Opponent:       opponent,
		Source:         source,
	}
	p.Reason = fmt.Sprintf("%s has lost %d straight games in this series", swept.Name, losses)
	p.Confidence = ConfidenceMedium
	return p
}

// pickSet keeps one sweep pick per game id. put overwrites (last write wins)
// while list keeps the order in which ids were first seen.
type pickSet struct {
	order []string
	byID  map[string]SweepPick
}

func newPickSet() *pickSet {
	return &pickSet{byID: make(map[string]SweepPick)}
}

func (s *pickSet) put(p SweepPick) {
	if _, ok := s.byID[p.GameID]; !ok {
		s.order = append(s.order, p.GameID)
	}
	s.byID[p.GameID] = p
}

func (s *pickSet) list() []SweepPick {
	out := make([]SweepPick, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
