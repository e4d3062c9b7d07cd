package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/dashboard"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/odds"
	"github.com/preston-bernstein/mlb-travel-picks/internal/krate"
	"github.com/preston-bernstein/mlb-travel-picks/internal/logging"
	"github.com/preston-bernstein/mlb-travel-picks/internal/metrics"
	"github.com/preston-bernstein/mlb-travel-picks/internal/outs"
	"github.com/preston-bernstein/mlb-travel-picks/internal/picks"
	"github.com/preston-bernstein/mlb-travel-picks/internal/snapshots"
	"github.com/preston-bernstein/mlb-travel-picks/internal/timeutil"
)

const (
	defaultInterval    = 5 * time.Minute
	defaultSeasonStart = "03-27"
)

// ScheduleLoader returns the date buckets of a window.
type ScheduleLoader interface {
	LoadWindow(ctx context.Context, start, end string) ([]games.DateBucket, error)
}

// StatsCollector gathers K-rate inputs for a slate.
type StatsCollector interface {
	Collect(ctx context.Context, gs []games.Game, asOf string) (krate.Inputs, error)
}

// OddsSource returns current moneyline quotes.
type OddsSource interface {
	FetchOdds(ctx context.Context) ([]odds.Quote, error)
}

// PropsSource returns pitcher prop lines for upstream events.
type PropsSource interface {
	FetchPitcherProps(ctx context.Context, eventIDs []string) ([]odds.PitcherProp, error)
}

// Sink receives each freshly built snapshot.
type Sink interface {
	Replace(dashboard.Snapshot)
}

// Deps are the collaborators of a refresh cycle. Stats, Odds and Props are
// optional; Props is only consulted when Odds returned quotes.
type Deps struct {
	Schedule ScheduleLoader
	Stats    StatsCollector
	Odds     OddsSource
	Props    PropsSource
	Sink     Sink
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

// Options tune the refresh loop.
type Options struct {
	Interval    time.Duration
	Location    *time.Location
	SeasonStart string // MM-DD
	Strategy    dashboard.Strategy
}

// Poller rebuilds the dashboard on an interval. Cycles never overlap; each one
// replaces the previous snapshot wholesale.
type Poller struct {
	deps        Deps
	interval    time.Duration
	loc         *time.Location
	seasonStart string
	strategy    dashboard.Strategy
	now         func() time.Time

	refreshMu sync.Mutex

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	Date                string    `json:"date,omitempty"`
}

// IsReady reports whether a snapshot has been built and the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(deps Deps, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.SeasonStart == "" {
		opts.SeasonStart = defaultSeasonStart
	}
	return &Poller{
		deps:        deps,
		interval:    opts.Interval,
		loc:         opts.Location,
		seasonStart: opts.SeasonStart,
		strategy:    opts.Strategy,
		now:         time.Now,
		done:        make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.deps.Logger, "poller started", logging.FieldDurationMS, p.interval.Milliseconds())
		// Initial build to warm data on boot.
		_ = p.RefreshNow(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.deps.Logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.deps.Logger, "poller stopped")
				return
			case <-p.ticker.C:
				_ = p.RefreshNow(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// RefreshNow runs one refresh cycle synchronously. A cycle already in flight
// finishes first.
func (p *Poller) RefreshNow(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)
	snap, err := p.refresh(ctx)
	if p.deps.Metrics != nil {
		p.deps.Metrics.RecordRefreshCycle(time.Since(start), err)
	}
	if err != nil {
		logging.Error(p.deps.Logger, "refresh failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		p.recordFailure(err, start)
		return err
	}

	p.deps.Sink.Replace(snap)
	p.recordSuccess(start, snap.Date)
	p.recordPicks(snap)
	if snap.Dropped > 0 {
		logging.Warn(p.deps.Logger, "dropped malformed schedule records", logging.FieldDate, snap.Date, logging.FieldDropped, snap.Dropped)
	}
	logging.Info(p.deps.Logger, "refreshed dashboard",
		logging.FieldDate, snap.Date,
		logging.FieldCount, len(snap.Games),
		"travel", len(snap.Picks.Travel),
		"sweep", len(snap.Picks.Sweep),
		"weak_team", len(snap.Picks.WeakTeam),
		"krate", len(snap.KRate),
		"outs", outs.Bets(snap.Outs),
		logging.FieldDropped, snap.Dropped,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) refresh(ctx context.Context) (dashboard.Snapshot, error) {
	if p.deps.Schedule == nil || p.deps.Sink == nil {
		return dashboard.Snapshot{}, errors.New("poller not configured")
	}

	today := timeutil.Today(p.now(), p.loc)
	start, end, err := p.window(today)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	buckets, err := p.deps.Schedule.LoadWindow(ctx, start, end)
	if err != nil {
		return dashboard.Snapshot{}, err
	}

	var slate []games.Game
	for _, b := range buckets {
		if b.Date == today {
			slate = append(slate, b.Games...)
		}
	}

	var inputs krate.Inputs
	if p.deps.Stats != nil {
		inputs, err = p.deps.Stats.Collect(ctx, slate, today)
		if err != nil {
			if ctx.Err() != nil {
				return dashboard.Snapshot{}, ctx.Err()
			}
			logging.Warn(p.deps.Logger, "k-rate inputs incomplete", logging.FieldDate, today, "err", err)
		}
	}

	var quotes []odds.Quote
	if p.deps.Odds != nil {
		quotes, err = p.deps.Odds.FetchOdds(ctx)
		if err != nil {
			logging.Warn(p.deps.Logger, "odds unavailable", logging.FieldDate, today, "err", err)
			quotes = nil
		}
	}

	var props []odds.PitcherProp
	if p.deps.Props != nil && len(quotes) > 0 {
		events := odds.EventIDs(odds.Match(slate, quotes))
		props, err = p.deps.Props.FetchPitcherProps(ctx, events)
		if err != nil {
			if ctx.Err() != nil {
				return dashboard.Snapshot{}, ctx.Err()
			}
			logging.Warn(p.deps.Logger, "pitcher props incomplete", logging.FieldDate, today, logging.FieldCount, len(props), "err", err)
		}
	}

	return dashboard.Build(dashboard.Inputs{
		Date:     today,
		Buckets:  buckets,
		KRate:    inputs,
		Quotes:   quotes,
		Props:    props,
		Strategy: p.strategy,
	}, p.deps.Logger), nil
}

// window spans opening day through today, reaching further back when the
// sweep lookback extends past opening day.
func (p *Poller) window(today string) (string, string, error) {
	start, end, err := snapshots.SeasonWindow(today, p.seasonStart)
	if err != nil {
		return "", "", err
	}
	if p.strategy.LookbackDays > 0 {
		if lb, err := timeutil.AddDays(today, -p.strategy.LookbackDays); err == nil && lb < start {
			start = lb
		}
	}
	return start, end, nil
}

func (p *Poller) recordPicks(snap dashboard.Snapshot) {
	if p.deps.Metrics == nil {
		return
	}
	p.deps.Metrics.RecordDropped(snap.Dropped)
	p.deps.Metrics.RecordPicks(string(picks.StrategyTravel), len(snap.Picks.Travel))
	p.deps.Metrics.RecordPicks(string(picks.StrategySweep), len(snap.Picks.Sweep))
	p.deps.Metrics.RecordPicks(string(picks.StrategyWeakTeam), len(snap.Picks.WeakTeam))
	p.deps.Metrics.RecordPicks(string(picks.StrategyKRate), len(snap.KRate))
	p.deps.Metrics.RecordPicks(string(picks.StrategyOuts), outs.Bets(snap.Outs))
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, date string) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Date = date
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
