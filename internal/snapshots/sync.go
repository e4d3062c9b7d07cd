package snapshots

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

// SyncConfig controls scheduled snapshot backfill.
type SyncConfig struct {
	Enabled bool
	// Schedule is a cron expression with a leading seconds field.
	Schedule string
	// RefreshDays is how many trailing days each run refetches regardless of snapshots.
	RefreshDays int
	SeasonStart string // MM-DD
}

const (
	defaultSchedule    = "0 0 9 * * *"
	defaultRefreshDays = 3
	defaultSeasonStart = "03-27"
)

// Syncer warms the season window on start and, on a cron schedule, refetches
// the trailing days so late corrections and postponements reach disk.
type Syncer struct {
	archive *Archive
	cfg     SyncConfig
	loc     *time.Location
	logger  *slog.Logger
	now     func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// NewSyncer constructs a snapshot syncer.
func NewSyncer(archive *Archive, cfg SyncConfig, loc *time.Location, logger *slog.Logger) *Syncer {
	if cfg.Schedule == "" {
		cfg.Schedule = defaultSchedule
	}
	if cfg.RefreshDays <= 0 {
		cfg.RefreshDays = defaultRefreshDays
	}
	if cfg.SeasonStart == "" {
		cfg.SeasonStart = defaultSeasonStart
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Syncer{archive: archive, cfg: cfg, loc: loc, logger: logger, now: time.Now}
}

// Start schedules the cron job and kicks off an initial warm in the
// background. It fails only on an invalid schedule.
func (s *Syncer) Start(ctx context.Context) error {
	if s == nil || !s.cfg.Enabled || s.archive == nil {
		return nil
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(s.loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(s.cfg.Schedule, func() { s.SyncOnce(ctx) }); err != nil {
		return fmt.Errorf("snapshot sync schedule %q: %w", s.cfg.Schedule, err)
	}

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	logging.Info(s.logger, "snapshot sync starting",
		"schedule", s.cfg.Schedule,
		"refresh_days", s.cfg.RefreshDays,
		"season_start", s.cfg.SeasonStart,
	)
	c.Start()
	go s.SyncOnce(ctx)
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Syncer) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// SyncOnce refetches the trailing days and then fills any gaps in the season window.
func (s *Syncer) SyncOnce(ctx context.Context) {
	started := time.Now()
	today := timeutil.Today(s.now(), s.loc)

	from, err := timeutil.AddDays(today, -s.cfg.RefreshDays)
	if err != nil {
		logging.Warn(s.logger, "snapshot sync skipped", logging.FieldDate, today, "err", err)
		return
	}
	refreshed, err := s.archive.Refresh(ctx, from, today)
	if err != nil {
		logging.Warn(s.logger, "snapshot refresh incomplete", "start", from, "end", today, "err", err)
	}

	start, end, err := SeasonWindow(today, s.cfg.SeasonStart)
	if err != nil {
		logging.Warn(s.logger, "snapshot sync skipped", "season_start", s.cfg.SeasonStart, "err", err)
		return
	}
	buckets, err := s.archive.LoadWindow(ctx, start, end)
	if err != nil {
		logging.Warn(s.logger, "snapshot backfill incomplete", "start", start, "end", end, "err", err)
		return
	}
	logging.Info(s.logger, "snapshot sync complete",
		logging.FieldDate, today,
		"refreshed", refreshed,
		logging.FieldCount, len(buckets),
		logging.FieldDurationMS, time.Since(started).Milliseconds(),
	)
}

// SeasonWindow spans opening day of today's year through today. Before
// opening day it collapses to today alone.
func SeasonWindow(today, seasonStart string) (start, end string, err error) {
	parsed, err := timeutil.ParseDate(today)
	if err != nil {
		return "", "", err
	}
	opening, err := timeutil.SeasonStart(parsed.Year(), seasonStart)
	if err != nil {
		return "", "", err
	}
	if opening > today {
		return today, today, nil
	}
	return opening, today, nil
}
