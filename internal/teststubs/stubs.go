package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-travel-picks/internal/dashboard"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/odds"
)

// StubLoader is a test double for a schedule window loader.
type StubLoader struct {
	Buckets []games.DateBucket
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}

	mu     sync.Mutex
	Ranges [][2]string
}

// LoadWindow returns the configured buckets and error while tracking calls.
func (s *StubLoader) LoadWindow(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	_ = ctx
	s.mu.Lock()
	s.Ranges = append(s.Ranges, [2]string{start, end})
	s.mu.Unlock()
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Buckets, s.Err
}

// LastRange returns the most recently requested window.
func (s *StubLoader) LastRange() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ranges) == 0 {
		return "", ""
	}
	r := s.Ranges[len(s.Ranges)-1]
	return r[0], r[1]
}

// StubSink records every snapshot it is handed.
type StubSink struct {
	mu        sync.Mutex
	Snapshots []dashboard.Snapshot
}

// Replace records the snapshot for verification in tests.
func (s *StubSink) Replace(snap dashboard.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshots = append(s.Snapshots, snap)
}

// Last returns the most recent snapshot.
func (s *StubSink) Last() (dashboard.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Snapshots) == 0 {
		return dashboard.Snapshot{}, false
	}
	return s.Snapshots[len(s.Snapshots)-1], true
}

// StubOdds is a test double for an odds source.
type StubOdds struct {
	Quotes []odds.Quote
	Err    error
}

// FetchOdds returns the configured quotes and error.
func (s StubOdds) FetchOdds(ctx context.Context) ([]odds.Quote, error) {
	return s.Quotes, s.Err
}

// StubProps is a test double for a pitcher prop source. It records the event
// ids of every call.
type StubProps struct {
	Props []odds.PitcherProp
	Err   error

	mu     sync.Mutex
	events [][]string
}

// FetchPitcherProps records eventIDs and returns the configured props and error.
func (s *StubProps) FetchPitcherProps(ctx context.Context, eventIDs []string) ([]odds.PitcherProp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, append([]string(nil), eventIDs...))
	return s.Props, s.Err
}

// Calls returns the event ids requested by each call.
func (s *StubProps) Calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.events...)
}
