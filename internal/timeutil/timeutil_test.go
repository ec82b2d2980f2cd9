package timeutil

import (
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2025-11-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatDate(parsed); got != "2025-11-09" {
		t.Fatalf("expected round trip, got %s", got)
	}
}

func TestParseDateRejectsBadInput(t *testing.T) {
	if _, err := ParseDate("11/09/2025"); err == nil {
		t.Fatal("expected error for non-canonical date")
	}
}

func TestCurrentSeason(t *testing.T) {
	cases := map[string]int{
		"2025-09-07T13:00:00Z": 2025,
		"2026-01-11T18:00:00Z": 2025,
		"2026-02-08T23:30:00Z": 2025,
		"2026-08-29T16:00:00Z": 2026,
	}
	for raw, want := range cases {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t.Fatalf("bad fixture %s: %v", raw, err)
		}
		if got := CurrentSeason(ts); got != want {
			t.Fatalf("season for %s: expected %d, got %d", raw, want, got)
		}
	}
}
