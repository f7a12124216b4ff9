// Package viewmodel derives what the journal shows from the raw collection:
// filtered listings and Today/Yesterday/month sections.
package viewmodel

import (
	"sort"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

const (
	// TodayTitle heads entries dated today.
	TodayTitle = "Today"
	// YesterdayTitle heads entries dated yesterday.
	YesterdayTitle = "Yesterday"

	monthFormat     = "January"
	yearMonthFormat = "January 2006"
)

// Query selects entries for display.
type Query struct {
	Search        string
	BookmarkOnly  bool
	SortAscending bool
}

// Section is a titled, ordered group of entries.
type Section struct {
	Title   string         `json:"title"`
	Entries []*entry.Entry `json:"entries"`
}

// Option customises Filter and Group behaviour.
type Option func(*buildOptions)

// WithNow fixes the reference time used for day buckets.
func WithNow(now time.Time) Option {
	return func(opts *buildOptions) {
		opts.now = now
	}
}

type buildOptions struct {
	now time.Time
}

func newBuildOptions(opts []Option) *buildOptions {
	config := &buildOptions{}
	for _, opt := range opts {
		opt(config)
	}
	if config.now.IsZero() {
		config.now = time.Now()
	}
	return config
}

// Visible reports whether e passes q and is not blank.
func Visible(e *entry.Entry, q Query) bool {
	if e == nil || e.IsBlank() {
		return false
	}
	if q.BookmarkOnly && !e.IsBookmarked {
		return false
	}
	return e.Matches(q.Search)
}

// Filter returns the visible entries as a flat list ordered by date, oldest
// first when q.SortAscending, newest first otherwise. Equal dates keep
// collection order.
func Filter(entries []*entry.Entry, q Query) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if Visible(e, q) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.SortAscending {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// Group buckets the visible entries into Today, Yesterday, the current month,
// and one section per earlier month, most recent first. Entries inside a
// section are always newest first; q.SortAscending only affects Filter.
// Empty sections are omitted.
func Group(entries []*entry.Entry, q Query, opts ...Option) []Section {
	config := newBuildOptions(opts)
	now := config.now

	visible := Filter(entries, Query{Search: q.Search, BookmarkOnly: q.BookmarkOnly})

	var today, yesterday, thisMonth []*entry.Entry
	type monthKey struct {
		year  int
		month time.Month
	}
	earlier := make(map[monthKey][]*entry.Entry)
	var keys []monthKey

	for _, e := range visible {
		days := entry.DaysBetween(e.Date.Time, now)
		switch {
		case days <= 0:
			today = append(today, e)
		case days == 1:
			yesterday = append(yesterday, e)
		case e.Date.SameMonth(now):
			thisMonth = append(thisMonth, e)
		default:
			local := e.Date.Local()
			k := monthKey{year: local.Year(), month: local.Month()}
			if _, ok := earlier[k]; !ok {
				keys = append(keys, k)
			}
			earlier[k] = append(earlier[k], e)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})

	sections := make([]Section, 0, 3+len(keys))
	appendSection := func(title string, items []*entry.Entry) {
		if len(items) == 0 {
			return
		}
		sections = append(sections, Section{Title: title, Entries: items})
	}
	appendSection(TodayTitle, today)
	appendSection(YesterdayTitle, yesterday)
	appendSection(now.Local().Format(monthFormat), thisMonth)
	for _, k := range keys {
		appendSection(monthTitle(k.year, k.month, now), earlier[k])
	}
	return sections
}

// monthTitle names an earlier month, adding the year when it is not the
// current one so that the same month of different years never share a title.
func monthTitle(year int, month time.Month, now time.Time) string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	if year == now.Local().Year() {
		return first.Format(monthFormat)
	}
	return first.Format(yearMonthFormat)
}
