package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

var clockLayouts = []string{"15:04", "3:04pm", "3:04PM", "3pm", "3PM"}

// ErrFutureDate is returned when an entry date lies after today.
var ErrFutureDate = errors.New("date is after today")

// ParseTimeOfDay accepts "20:00", "8:30pm" or "8pm".
func ParseTimeOfDay(v string) (TimeOfDay, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(v), " ", "")
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM", v)
}

// String renders HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On places the time of day on the calendar day of d.
func (t TimeOfDay) On(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, t.Hour, t.Minute, 0, 0, d.Location())
}

// Next is the first occurrence of t strictly after now.
func (t TimeOfDay) Next(now time.Time) time.Time {
	next := t.On(now)
	if !next.After(now) {
		next = t.On(now.AddDate(0, 0, 1))
	}
	return next
}

// ParseEntryDate reads an entry date relative to now: "today", "yesterday",
// "2026-3-14" or "3/14". A month/day that has not happened yet this year is
// taken from last year. Dates after today are rejected.
func ParseEntryDate(v string, now time.Time) (time.Time, error) {
	switch s := strings.ToLower(strings.TrimSpace(v)); s {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(layoutISO, strings.TrimSpace(v), now.Location())
	if err != nil {
		t, err = time.ParseInLocation(layoutISOShort, strings.TrimSpace(v), now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-M-D or M/D", v)
		}
		t = t.AddDate(now.Year(), 0, 0)
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	y, m, d := now.Date()
	endOfToday := time.Date(y, m, d, 23, 59, 59, 0, now.Location())
	if t.After(endOfToday) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrFutureDate, t.Format("2006-01-02"))
	}
	return t, nil
}
