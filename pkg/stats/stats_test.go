package stats

import (
	"testing"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

var base = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.Local)

func on(offset int, title string) *entry.Entry {
	return entry.New(title, "", base.AddDate(0, 0, offset))
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", s)
	}
}

func TestTotalWords(t *testing.T) {
	a := entry.New("a b", "c", base)
	b := entry.New("", "", base)
	if got := Compute([]*entry.Entry{a}).TotalWords; got != 3 {
		t.Fatalf("expected 3 words, got %d", got)
	}
	if got := Compute([]*entry.Entry{b}).TotalWords; got != 0 {
		t.Fatalf("expected 0 words, got %d", got)
	}
}

func TestDayStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		streak  int
		days    int
	}{
		{"single", []int{0}, 1, 1},
		{"three in a row", []int{0, -1, -2}, 3, 3},
		{"gap", []int{0, -1, -3, -4, -5}, 3, 5},
		{"duplicates", []int{0, 0, -1, -1, -1}, 2, 2},
		{"unordered", []int{-2, 0, -10, -1}, 3, 4},
		{"across month", []int{-18, -19, -20}, 3, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var entries []*entry.Entry
			for _, o := range tc.offsets {
				entries = append(entries, on(o, "x"))
			}
			s := Compute(entries)
			if s.DayStreak != tc.streak {
				t.Fatalf("expected streak %d, got %d", tc.streak, s.DayStreak)
			}
			if s.DaysJournalled != tc.days {
				t.Fatalf("expected %d days, got %d", tc.days, s.DaysJournalled)
			}
		})
	}
}

func TestDayStreakMonotonic(t *testing.T) {
	entries := []*entry.Entry{on(0, "x"), on(-4, "x")}
	prev := Compute(entries).DayStreak
	for _, o := range []int{-2, -3, -1} {
		entries = append(entries, on(o, "x"))
		got := Compute(entries).DayStreak
		if got < prev {
			t.Fatalf("streak decreased from %d to %d", prev, got)
		}
		prev = got

		dup := append(entries, on(o, "dup"))
		if Compute(dup).DayStreak != got {
			t.Fatalf("duplicate day changed the streak")
		}
	}
	if prev != 5 {
		t.Fatalf("expected final streak 5, got %d", prev)
	}
}
