package store

import (
	"sync"
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/dashboard"
)

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Snapshot(); ok {
		t.Fatalf("expected empty store to report no snapshot")
	}
}

func TestMemoryStoreSetReplacesSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.SetSnapshot(dashboard.Snapshot{Date: "2024-05-01", Dropped: 3})
	s.SetSnapshot(dashboard.Snapshot{Date: "2024-05-02"})

	got, ok := s.Snapshot()
	if !ok {
		t.Fatalf("expected snapshot")
	}
	if got.Date != "2024-05-02" || got.Dropped != 0 {
		t.Fatalf("expected last write to win without merging, got %+v", got)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetSnapshot(dashboard.Snapshot{Date: "2024-05-01"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Snapshot()
		}()
	}
	wg.Wait()
	if got, ok := s.Snapshot(); !ok || got.Date != "2024-05-01" {
		t.Fatalf("unexpected snapshot %+v ok=%v", got, ok)
	}
}
