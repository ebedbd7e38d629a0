package services

import (
	"testing"
	"time"
)

func TestParseEventTimes(t *testing.T) {
	start, end, err := parseEventTimes("2026-09-01T15:00:00Z", "2026-09-01T16:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Sub(start) != 90*time.Minute {
		t.Fatalf("duration = %s", end.Sub(start))
	}
}

func TestParseEventTimesDefaultsEnd(t *testing.T) {
	start, end, err := parseEventTimes("2026-09-01T15:00:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Sub(start) != time.Hour {
		t.Fatalf("default duration = %s", end.Sub(start))
	}
}

func TestParseEventTimesEndBeforeStart(t *testing.T) {
	start, end, err := parseEventTimes("2026-09-01T15:00:00Z", "2026-09-01T14:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Sub(start) != time.Hour {
		t.Fatalf("corrected duration = %s", end.Sub(start))
	}
}

func TestParseEventTimesInvalid(t *testing.T) {
	if _, _, err := parseEventTimes("tomorrow at noon", ""); err == nil {
		t.Fatal("expected error for non-RFC3339 start")
	}
	if _, _, err := parseEventTimes("2026-09-01T15:00:00Z", "later"); err == nil {
		t.Fatal("expected error for non-RFC3339 end")
	}
}
