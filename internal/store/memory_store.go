package store

import (
	"sync"

	"github.com/preston-bernstein/mlb-travel-picks/internal/dashboard"
)

// MemoryStore holds the current dashboard snapshot. Each refresh replaces it
// wholesale; readers never see a partially built snapshot.
type MemoryStore struct {
	mu      sync.RWMutex
	current *dashboard.Snapshot
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Snapshot returns the current snapshot and whether one has been stored.
func (s *MemoryStore) Snapshot() (dashboard.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return dashboard.Snapshot{}, false
	}
	return *s.current, true
}

// SetSnapshot replaces the current snapshot.
func (s *MemoryStore) SetSnapshot(snap dashboard.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &snap
}
