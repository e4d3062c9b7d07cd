package providers

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/metrics"
	"github.com/preston-bernstein/mlb-travel-picks/internal/statcache"
)

func TestCachedProviderServesRepeatLookupsFromCache(t *testing.T) {
	inner := &flakeyProvider{}
	rec := metrics.NewRecorder()
	cp := NewCachedProvider(inner, statcache.NewMemoryCache(), time.Hour, nil, rec)
	ctx := context.Background()

	first, err := cp.FetchSeasonLine(ctx, "p1", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cp.FetchSeasonLine(ctx, "p1", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected cached value to match, got %+v vs %+v", first, second)
	}
	if inner.calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.calls.Load())
	}
	if hits, misses := rec.CacheStats(); hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestCachedProviderKeysBySeasonAndWindow(t *testing.T) {
	inner := &flakeyProvider{}
	cp := NewCachedProvider(inner, statcache.NewMemoryCache(), time.Hour, nil, nil)
	ctx := context.Background()

	_, _ = cp.FetchTeamBatting(ctx, "115", 2024)
	_, _ = cp.FetchTeamBatting(ctx, "115", 2025)
	_, _ = cp.FetchGameLog(ctx, "p1", "2025-05-01", "2025-05-31")
	_, _ = cp.FetchGameLog(ctx, "p1", "2025-05-02", "2025-06-01")
	if inner.calls.Load() != 4 {
		t.Fatalf("expected distinct keys to miss, got %d calls", inner.calls.Load())
	}
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &flakeyProvider{failures: 1}
	cp := NewCachedProvider(inner, statcache.NewMemoryCache(), time.Hour, nil, nil)
	ctx := context.Background()

	if _, err := cp.FetchGameLog(ctx, "p1", "2025-05-01", "2025-05-31"); err == nil {
		t.Fatalf("expected first call to fail")
	}
	if _, err := cp.FetchGameLog(ctx, "p1", "2025-05-01", "2025-05-31"); err != nil {
		t.Fatalf("expected retry to reach upstream, got %v", err)
	}
}

func TestCachedProviderPassesScheduleThrough(t *testing.T) {
	inner := &flakeyProvider{}
	cp := NewCachedProvider(inner, statcache.NewMemoryCache(), time.Hour, nil, nil)

	for i := 0; i < 2; i++ {
		if _, err := cp.FetchSchedule(context.Background(), "2025-06-01", "2025-06-01"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.calls.Load() != 2 {
		t.Fatalf("expected schedule never cached, got %d calls", inner.calls.Load())
	}
}

func TestNewCachedProviderWithoutCacheReturnsInner(t *testing.T) {
	inner := &flakeyProvider{}
	if got := NewCachedProvider(inner, nil, time.Hour, nil, nil); got != DataProvider(inner) {
		t.Fatalf("expected inner provider when cache is nil")
	}
}
