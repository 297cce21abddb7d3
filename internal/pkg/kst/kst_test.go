package kst

import (
	"testing"
	"time"
)

func TestToLocalISOString(t *testing.T) {
	got := ToLocalISOString("2026-01-06", "14:00")
	want := "2026-01-06T14:00:00+09:00"
	if got != want {
		t.Errorf("ToLocalISOString = %q, want %q", got, want)
	}

	got = ToLocalISOString("2026-01-06", "14:00:30")
	want = "2026-01-06T14:00:30+09:00"
	if got != want {
		t.Errorf("ToLocalISOString with seconds = %q, want %q", got, want)
	}
}

func TestLocalToUTCISOString(t *testing.T) {
	got, err := LocalToUTCISOString("2026-01-06", "14:00")
	if err != nil {
		t.Fatal(err)
	}
	want := "2026-01-06T05:00:00.000Z"
	if got != want {
		t.Errorf("LocalToUTCISOString = %q, want %q", got, want)
	}

	// Before 09:00 KST the UTC date rolls back a day.
	got, err = LocalToUTCISOString("2026-01-06", "08:30")
	if err != nil {
		t.Fatal(err)
	}
	want = "2026-01-05T23:30:00.000Z"
	if got != want {
		t.Errorf("LocalToUTCISOString = %q, want %q", got, want)
	}
}

func TestUTCToLocal(t *testing.T) {
	date, err := UTCToLocalDate("2026-01-06T05:00:00.000Z")
	if err != nil {
		t.Fatal(err)
	}
	if date != "2026-01-06" {
		t.Errorf("UTCToLocalDate = %q, want 2026-01-06", date)
	}

	clock, err := UTCToLocalTime("2026-01-06T05:00:00.000Z")
	if err != nil {
		t.Fatal(err)
	}
	if clock != "14:00:00" {
		t.Errorf("UTCToLocalTime = %q, want 14:00:00", clock)
	}

	// Late UTC evening is already the next KST day.
	date, err = UTCToLocalDate("2026-01-06T20:00:00.000Z")
	if err != nil {
		t.Fatal(err)
	}
	if date != "2026-01-07" {
		t.Errorf("UTCToLocalDate across midnight = %q, want 2026-01-07", date)
	}
}

func TestRoundTrip(t *testing.T) {
	dates := []string{"2026-01-06", "2025-12-31", "2026-02-28"}
	for _, date := range dates {
		utc, err := LocalToUTCISOString(date, "00:00:00")
		if err != nil {
			t.Fatal(err)
		}
		back, err := UTCToLocalDate(utc)
		if err != nil {
			t.Fatal(err)
		}
		if back != date {
			t.Errorf("round trip %s -> %s -> %s", date, utc, back)
		}
	}
}

func TestMinutesBetween(t *testing.T) {
	got, err := MinutesBetween("09:00", "18:30")
	if err != nil {
		t.Fatal(err)
	}
	if got != 570 {
		t.Errorf("MinutesBetween(09:00, 18:30) = %d, want 570", got)
	}
}

func TestToLocalTime(t *testing.T) {
	got, err := ToLocalTime("2026-01-06", "14:00")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2026, 1, 6, 5, 0, 0, 0, time.UTC)) {
		t.Errorf("ToLocalTime = %v, want 2026-01-06T05:00:00Z", got.UTC())
	}
}
