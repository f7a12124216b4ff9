// Package stats summarises a journal: streaks, words and active days.
package stats

import (
	"sort"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

// Stats is the journal summary.
type Stats struct {
	// DayStreak is the longest run of consecutive calendar days that each
	// have at least one entry.
	DayStreak int `json:"dayStreak"`
	// TotalWords sums title and description words across all entries.
	TotalWords int `json:"totalWords"`
	// DaysJournalled counts distinct calendar days with an entry.
	DaysJournalled int `json:"daysJournalled"`
}

// Compute summarises all entries. Blank entries still count toward days.
func Compute(entries []*entry.Entry) Stats {
	var s Stats
	days := Days(entries)
	s.DaysJournalled = len(days)
	s.DayStreak = longestStreak(days)
	for _, e := range entries {
		if e == nil {
			continue
		}
		s.TotalWords += e.Words()
	}
	return s
}

// Days returns the distinct local calendar days of entries, newest first.
func Days(entries []*entry.Entry) []time.Time {
	seen := make(map[time.Time]struct{}, len(entries))
	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		d := e.Day()
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days
}

// longestStreak walks distinct days newest first and keeps the longest run
// where each step back is exactly one calendar day.
func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		if entry.DaysBetween(days[i], days[i-1]) == 1 {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}
