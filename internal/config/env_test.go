package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefaultRejectsNonPositive(t *testing.T) {
	t.Setenv("INT_TEST", "-3")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default for negative value, got %d", got)
	}
	t.Setenv("INT_TEST", "12")
	if got := intEnvOrDefault("INT_TEST", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestNonNegativeIntEnvOrDefaultAcceptsZero(t *testing.T) {
	t.Setenv("INT_TEST", "0")
	if got := nonNegativeIntEnvOrDefault("INT_TEST", 3); got != 0 {
		t.Fatalf("expected zero to be accepted, got %d", got)
	}
	t.Setenv("INT_TEST", "x")
	if got := nonNegativeIntEnvOrDefault("INT_TEST", 3); got != 3 {
		t.Fatalf("expected default on garbage, got %d", got)
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	t.Setenv("DUR_TEST", "250ms")
	if got := durationEnvOrDefault("DUR_TEST", time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}
	t.Setenv("DUR_TEST", "-1s")
	if got := durationEnvOrDefault("DUR_TEST", time.Second); got != time.Second {
		t.Fatalf("expected default on negative, got %s", got)
	}
}
