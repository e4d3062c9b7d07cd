package games

import (
	"sort"

	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// Sanitize is the ingestion boundary for schedule data. It drops buckets with
// an unparseable date and games missing an id, venue, or a usable team, stamps
// every game with its bucket date, merges buckets that share a date, and
// resolves duplicate game ids (a postponed listing loses to the played one,
// otherwise the later listing wins). Buckets come back ordered by date.
// dropped counts discarded game records.
func Sanitize(buckets []DateBucket) (clean []DateBucket, dropped int) {
	byDate := make(map[string][]Game)
	seen := make(map[string]slot)

	for _, bucket := range buckets {
		if _, err := timeutil.ParseDate(bucket.Date); err != nil {
			dropped += len(bucket.Games)
			continue
		}
		if _, ok := byDate[bucket.Date]; !ok {
			byDate[bucket.Date] = []Game{}
		}
		for _, g := range bucket.Games {
			if !wellFormed(g) {
				dropped++
				continue
			}
			g.Date = bucket.Date
			if g.Status == "" {
				g.Status = StatusScheduled
			}

			if prev, ok := seen[g.ID]; ok {
				existing := byDate[prev.date][prev.index]
				dropped++
				if !existing.Played() || g.Played() {
					byDate[prev.date] = removeAt(byDate[prev.date], prev.index)
					reindex(seen, byDate[prev.date], prev.date)
				} else {
					continue
				}
			}
			byDate[bucket.Date] = append(byDate[bucket.Date], g)
			seen[g.ID] = slot{date: bucket.Date, index: len(byDate[bucket.Date]) - 1}
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	clean = make([]DateBucket, 0, len(dates))
	for _, date := range dates {
		clean = append(clean, NewDateBucket(date, byDate[date]))
	}
	return clean, dropped
}

func wellFormed(g Game) bool {
	if g.ID == "" || g.Venue == "" {
		return false
	}
	if !g.HomeTeam.Valid() || !g.AwayTeam.Valid() {
		return false
	}
	return g.HomeTeam.ID != g.AwayTeam.ID
}

func removeAt(games []Game, i int) []Game {
	out := make([]Game, 0, len(games)-1)
	out = append(out, games[:i]...)
	return append(out, games[i+1:]...)
}

type slot struct {
	date  string
	index int
}

func reindex(seen map[string]slot, games []Game, date string) {
	for i, g := range games {
		seen[g.ID] = slot{date: date, index: i}
	}
}
