package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("mlbstats", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("mlbstats", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("mlbstats"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("mlbstats"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("mlbstats"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("mlbstats")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("mlbstats", 5*time.Second)
	rec.RecordRateLimit("mlbstats", 0)

	if got := rec.RateLimitHits("mlbstats"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("mlbstats"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksRefreshOutput(t *testing.T) {
	rec := NewRecorder()
	rec.RecordDropped(3)
	rec.RecordDropped(0)
	rec.RecordPicks("travel", 2)
	rec.RecordPicks("travel", 1)
	rec.RecordCacheLookup(true)
	rec.RecordCacheLookup(false)
	rec.RecordCacheLookup(false)

	if got := rec.Dropped(); got != 3 {
		t.Fatalf("expected 3 dropped, got %d", got)
	}
	if got := rec.Picks("travel"); got != 3 {
		t.Fatalf("expected 3 travel picks, got %d", got)
	}
	if hits, misses := rec.CacheStats(); hits != 1 || misses != 2 {
		t.Fatalf("expected 1 hit and 2 misses, got %d/%d", hits, misses)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("p", time.Millisecond, nil)
	rec.RecordDropped(1)
	rec.RecordPicks("sweep", 1)
	rec.RecordCacheLookup(true)
	rec.RecordRefreshCycle(time.Millisecond, nil)
	if rec.Dropped() != 0 || rec.Picks("sweep") != 0 {
		t.Fatalf("expected nil recorder to report zeros")
	}
}
