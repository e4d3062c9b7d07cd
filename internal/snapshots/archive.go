package snapshots

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// ErrSnapshotUnreadable reports a stored snapshot that exists but could not be decoded.
var ErrSnapshotUnreadable = errors.New("snapshot unreadable")

// Archive serves schedule windows from disk, fetching only what it must.
// Today and yesterday are always refetched so live and final scores land;
// older days are fetched once and then read from their snapshot.
type Archive struct {
	provider providers.ScheduleProvider
	store    Store
	writer   *Writer
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

// NewArchive builds an archive. A nil store or writer turns it into a
// pass-through to the provider.
func NewArchive(provider providers.ScheduleProvider, store Store, writer *Writer, loc *time.Location, logger *slog.Logger) *Archive {
	if loc == nil {
		loc = time.UTC
	}
	return &Archive{provider: provider, store: store, writer: writer, loc: loc, logger: logger, now: time.Now}
}

// LoadWindow returns the non-empty date buckets between start and end inclusive.
// A failed fetch only fails the call when some date has no snapshot to fall back on.
func (a *Archive) LoadWindow(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	if a == nil || a.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	if a.store == nil || a.writer == nil {
		return a.provider.FetchSchedule(ctx, start, end)
	}

	dates, err := timeutil.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	today := timeutil.Today(a.now(), a.loc)
	yesterday, _ := timeutil.AddDays(today, -1)
	var stale []string
	for _, d := range dates {
		if d == today || d == yesterday || !a.store.Has(d) {
			stale = append(stale, d)
		}
	}

	fresh, fetchErr := a.fetch(ctx, stale)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]games.DateBucket, 0, len(dates))
	missing := 0
	for _, d := range dates {
		bucket, ok := fresh[d]
		if !ok {
			loaded, err := a.store.LoadBucket(d)
			if err != nil {
				missing++
				continue
			}
			bucket = loaded
		}
		if len(bucket.Games) > 0 {
			out = append(out, bucket)
		}
	}
	if missing > 0 {
		if fetchErr == nil {
			fetchErr = ErrSnapshotUnreadable
		}
		return nil, fmt.Errorf("load window %s..%s: %d dates unavailable: %w", start, end, missing, fetchErr)
	}
	return out, nil
}

// Refresh refetches every date between start and end and rewrites their
// snapshots. It returns how many dates were written.
func (a *Archive) Refresh(ctx context.Context, start, end string) (int, error) {
	if a == nil || a.provider == nil {
		return 0, providers.ErrProviderUnavailable
	}
	dates, err := timeutil.DateRange(start, end)
	if err != nil {
		return 0, err
	}
	fresh, err := a.fetch(ctx, dates)
	return len(fresh), err
}

// fetch requests each contiguous run of dates in one provider call, writes
// every fetched date (empty days included) and returns them keyed by date.
func (a *Archive) fetch(ctx context.Context, dates []string) (map[string]games.DateBucket, error) {
	fresh := make(map[string]games.DateBucket, len(dates))
	var lastErr error
	for _, run := range contiguousRuns(dates) {
		first, last := run[0], run[len(run)-1]
		buckets, err := a.provider.FetchSchedule(ctx, first, last)
		if err != nil {
			if ctx.Err() != nil {
				return fresh, ctx.Err()
			}
			logging.Warn(a.logger, "schedule fetch failed", "start", first, "end", last, "err", err)
			lastErr = err
			continue
		}

		byDate := make(map[string][]games.Game, len(run))
		for _, b := range buckets {
			byDate[b.Date] = append(byDate[b.Date], b.Games...)
		}
		for _, d := range run {
			bucket := games.NewDateBucket(d, byDate[d])
			fresh[d] = bucket
			if a.writer == nil {
				continue
			}
			if err := a.writer.WriteBucket(bucket); err != nil {
				logging.Warn(a.logger, "snapshot write failed", logging.FieldDate, d, "err", err)
			}
		}
	}
	return fresh, lastErr
}

// contiguousRuns splits sorted dates into runs of consecutive days.
func contiguousRuns(dates []string) [][]string {
	var runs [][]string
	for _, d := range dates {
		if n := len(runs); n > 0 {
			prev := runs[n-1][len(runs[n-1])-1]
			if next, err := timeutil.AddDays(prev, 1); err == nil && next == d {
				runs[n-1] = append(runs[n-1], d)
				continue
			}
		}
		runs = append(runs, []string{d})
	}
	return runs
}
