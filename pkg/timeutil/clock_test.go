package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := map[string]TimeOfDay{
		"20:00":   {20, 0},
		"07:05":   {7, 5},
		"8:30pm":  {20, 30},
		"8pm":     {20, 0},
		" 9 AM ":  {9, 0},
		"12:15am": {0, 15},
	}
	for in, want := range tests {
		got, err := ParseTimeOfDay(in)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTimeOfDay(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatalf("expected error for 25:00")
	}
	if got := (TimeOfDay{Hour: 8, Minute: 5}).String(); got != "08:05" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestTimeOfDayNext(t *testing.T) {
	now := time.Date(2026, time.October, 19, 21, 0, 0, 0, time.UTC)
	next := TimeOfDay{Hour: 20}.Next(now)
	if !next.Equal(time.Date(2026, time.October, 20, 20, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected tomorrow 20:00, got %v", next)
	}
	next = TimeOfDay{Hour: 22}.Next(now)
	if !next.Equal(time.Date(2026, time.October, 19, 22, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected today 22:00, got %v", next)
	}
}

func TestParseEntryDate(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

	got, err := ParseEntryDate("yesterday", now)
	if err != nil || got.Day() != 18 {
		t.Fatalf("yesterday: %v %v", got, err)
	}
	got, err = ParseEntryDate("2026-3-14", now)
	if err != nil || got.Month() != time.March || got.Year() != 2026 {
		t.Fatalf("iso: %v %v", got, err)
	}
	got, err = ParseEntryDate("12/24", now)
	if err != nil || got.Year() != 2025 {
		t.Fatalf("short date should roll back a year: %v %v", got, err)
	}
	got, err = ParseEntryDate("10/19", now)
	if err != nil || got.Year() != 2026 {
		t.Fatalf("today's month/day should stay this year: %v %v", got, err)
	}
	if _, err := ParseEntryDate("2026-10-20", now); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
	if _, err := ParseEntryDate("soon", now); err == nil {
		t.Fatalf("expected parse error")
	}
}
