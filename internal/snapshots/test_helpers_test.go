package snapshots

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/teams"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

func simpleBucket(date string) games.DateBucket {
	return games.NewDateBucket(date, []games.Game{{
		ID:       date + "-1",
		Date:     date,
		Venue:    "Coors Field",
		HomeTeam: teams.Team{ID: "115", Name: "Colorado Rockies"},
		AwayTeam: teams.Team{ID: "119", Name: "Los Angeles Dodgers"},
		Status:   games.StatusScheduled,
	}})
}

func writeBucket(t *testing.T, w *Writer, bucket games.DateBucket) {
	t.Helper()
	if err := w.WriteBucket(bucket); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", bucket.Date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(BucketPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

// recordingProvider returns one game per requested date, except dates listed
// in offDays, and records each requested range.
type recordingProvider struct {
	mu      sync.Mutex
	ranges  [][2]string
	offDays map[string]bool
	err     error
}

func (p *recordingProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	p.mu.Lock()
	p.ranges = append(p.ranges, [2]string{start, end})
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	dates, err := timeutil.DateRange(start, end)
	if err != nil {
		return nil, err
	}
	var out []games.DateBucket
	for _, d := range dates {
		if p.offDays[d] {
			continue
		}
		out = append(out, simpleBucket(d))
	}
	return out, nil
}

func (p *recordingProvider) requested() [][2]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][2]string(nil), p.ranges...)
}
