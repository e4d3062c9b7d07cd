package dashboard

import (
	"errors"

	pipeline "github.com/preston-bernstein/mlb-travel-picks/internal/dashboard"
	"github.com/preston-bernstein/mlb-travel-picks/internal/krate"
	"github.com/preston-bernstein/mlb-travel-picks/internal/outs"
	"github.com/preston-bernstein/mlb-travel-picks/internal/picks"
	"github.com/preston-bernstein/mlb-travel-picks/internal/travel"
	"github.com/preston-bernstein/mlb-travel-picks/internal/trends"
)

// ErrNotReady is returned before the first refresh has stored a snapshot.
var ErrNotReady = errors.New("dashboard not ready")

// Store defines the contract for holding the current snapshot.
type Store interface {
	Snapshot() (pipeline.Snapshot, bool)
	SetSnapshot(pipeline.Snapshot)
}

// Service answers read queries against the current snapshot.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Snapshot returns the whole current snapshot.
func (s *Service) Snapshot() (pipeline.Snapshot, error) {
	snap, ok := s.store.Snapshot()
	if !ok {
		return pipeline.Snapshot{}, ErrNotReady
	}
	return snap, nil
}

// Replace swaps in a freshly built snapshot.
func (s *Service) Replace(snap pipeline.Snapshot) {
	s.store.SetSnapshot(snap)
}

// TrendsView is the aggregate section of the dashboard.
type TrendsView struct {
	Date        string              `json:"date"`
	Trends      trends.Aggregates   `json:"trends"`
	Comparisons []trends.Comparison `json:"comparisons"`
}

// Trends returns the travel aggregates and their comparisons.
func (s *Service) Trends() (TrendsView, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return TrendsView{}, err
	}
	return TrendsView{Date: snap.Date, Trends: snap.Trends, Comparisons: snap.Comparisons}, nil
}

// TrendGames returns the completed games behind a trend, narrowed by f.
func (s *Service) TrendGames(f trends.Filter) ([]travel.ClassifiedGame, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return trends.FilterGames(snap.Games, f)
}

// PicksView is every pick list for the snapshot date.
type PicksView struct {
	picks.Board
	KRate []krate.Opportunity `json:"krate"`
	Outs  []outs.Projection   `json:"outs"`
}

// Picks returns all pick lists.
func (s *Service) Picks() (PicksView, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return PicksView{}, err
	}
	return PicksView{Board: snap.Picks, KRate: snap.KRate, Outs: snap.Outs}, nil
}

// Games returns the classified games on date; an empty date means the snapshot date.
func (s *Service) Games(date string) (string, []travel.ClassifiedGame, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return "", nil, err
	}
	if date == "" {
		date = snap.Date
	}
	return date, snap.GamesOn(date), nil
}

// Backtests returns the season replays.
func (s *Service) Backtests() (pipeline.Backtests, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return pipeline.Backtests{}, err
	}
	return snap.Backtests, nil
}
