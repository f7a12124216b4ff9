package app

import (
	"context"
	"time"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal/viewmodel"
	"tableflip.dev/diary/pkg/stats"
)

// ReportResult is the journal between two dates.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []viewmodel.Section
	Stats    stats.Stats
	Total    int
}

// Report groups the visible entries dated between since and until, with stats
// for that window only.
func (s *Service) Report(ctx context.Context, since, until time.Time, q viewmodel.Query) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	all, err := s.Entries(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	window := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if e == nil {
			continue
		}
		if e.Date.Before(since) || e.Date.After(until) {
			continue
		}
		window = append(window, e)
	}

	sections := viewmodel.Group(window, q, viewmodel.WithNow(s.now()))
	total := 0
	for _, sec := range sections {
		total += len(sec.Entries)
	}
	return ReportResult{
		Since:    since,
		Until:    until,
		Sections: sections,
		Stats:    stats.Compute(window),
		Total:    total,
	}, nil
}
