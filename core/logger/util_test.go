package logger

import (
	"errors"
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	if got := Status(nil); got != "ok" {
		t.Fatalf("Status(nil) = %q, want ok", got)
	}
	if got := Status(errors.New("boom")); got != "error" {
		t.Fatalf("Status(err) = %q, want error", got)
	}
}

func TestRoundMS(t *testing.T) {
	if got := RoundMS(-time.Second); got != 0 {
		t.Fatalf("RoundMS(negative) = %v, want 0", got)
	}
	if got := RoundMS(1499 * time.Microsecond); got != time.Millisecond {
		t.Fatalf("RoundMS = %v, want 1ms", got)
	}
}

func TestSummarizeStrings(t *testing.T) {
	got, truncated := SummarizeStrings([]string{"a", "b", "c"}, 2)
	if got != "a, b" || !truncated {
		t.Fatalf("SummarizeStrings = %q/%v", got, truncated)
	}
	got, truncated = SummarizeStrings([]string{"a"}, 2)
	if got != "a" || truncated {
		t.Fatalf("SummarizeStrings = %q/%v", got, truncated)
	}
}
