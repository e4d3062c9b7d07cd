package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

const defaultRetentionDays = 400

// Writer persists schedule snapshots and the manifest, pruning days that
// fall outside the retention window.
type Writer struct {
	mu            sync.Mutex
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteBucket writes one day's games and refreshes the manifest. Games are
// ordered by id so identical days produce identical files.
func (w *Writer) WriteBucket(bucket games.DateBucket) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if bucket.Date == "" {
		return fmt.Errorf("date required")
	}
	bucket = games.NewDateBucket(bucket.Date, append([]games.Game(nil), bucket.Games...))
	sort.SliceStable(bucket.Games, func(i, j int) bool {
		return bucket.Games[i].ID < bucket.Games[j].ID
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	target := BucketPath(w.basePath, bucket.Date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(bucket, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return err
		}
		if err := os.Rename(tmp, target); err != nil {
			return err
		}
	}

	return w.updateManifest(bucket.Date)
}

func (w *Writer) updateManifest(date string) error {
	m, _ := ReadManifest(w.basePath, w.retentionDays)
	now := w.now().UTC()

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}

	m.Schedule.Dates = w.prune(dates, now)
	m.Schedule.LastRefreshed = now
	m.Retention.ScheduleDays = w.retentionDays
	return writeManifest(w.basePath, m, now)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, scheduleDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

// prune removes snapshots older than the retention window and returns the
// dates that remain, sorted.
func (w *Writer) prune(dates []string, now time.Time) []string {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err == nil && parsed.Before(cutoff) {
			_ = os.Remove(BucketPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
