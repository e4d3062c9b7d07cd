package providers

import (
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "mlbstats",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got != "rate limited (status=429)" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got != "provider rate limited" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestAsRateLimitErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("fetch schedule: %w", &RateLimitError{Provider: "mlbstats"})
	rl, ok := AsRateLimitError(wrapped)
	if !ok || rl.Provider != "mlbstats" {
		t.Fatalf("expected to unwrap rate limit error, got %v %v", rl, ok)
	}
	if _, ok := AsRateLimitError(fmt.Errorf("plain")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}
