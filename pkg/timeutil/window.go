package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is used by ParseWindow for empty input.
const DefaultWindow = "1w"

var windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)

var windowUnits = map[string]Window{
	"d":      {Days: 1},
	"day":    {Days: 1},
	"days":   {Days: 1},
	"w":      {Days: 7},
	"wk":     {Days: 7},
	"week":   {Days: 7},
	"weeks":  {Days: 7},
	"mo":     {Months: 1},
	"month":  {Months: 1},
	"months": {Months: 1},
	"y":      {Months: 12},
	"year":   {Months: 12},
	"years":  {Months: 12},
}

// Window is a span of whole calendar days ending today. Months count by the
// calendar and land on the last day of a shorter month, so "1mo" on 31 March
// starts on 28 February.
type Window struct {
	Months int
	Days   int
}

// ParseWindow reads windows like "3d", "1w", "2mo" or "1w3d". Units may be
// combined and are summed.
func ParseWindow(input string) (Window, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	var w Window
	for len(remaining) > 0 {
		m := windowPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := windowUnits[m[2]]
		if !ok {
			return Window{}, fmt.Errorf("unsupported window unit %q, expected d, w, mo or y", m[2])
		}
		w.Months += n * unit.Months
		w.Days += n * unit.Days
		remaining = remaining[len(m[0]):]
	}

	if w.IsZero() {
		return Window{}, fmt.Errorf("window must be at least one day")
	}
	return w, nil
}

// IsZero reports an empty window.
func (w Window) IsZero() bool {
	return w.Months <= 0 && w.Days <= 0
}

// Since is the start of the first day inside the window. A one day window
// starts at the beginning of today.
func (w Window) Since(now time.Time) time.Time {
	y, m, d := now.Date()
	first := time.Date(y, m-time.Month(w.Months), 1, 0, 0, 0, 0, now.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	start := first.AddDate(0, 0, d-1)
	if w.Days > 0 {
		return start.AddDate(0, 0, 1-w.Days)
	}
	return start
}

// String renders the compact form, such as "1mo1w2d".
func (w Window) String() string {
	var b strings.Builder
	if years, months := w.Months/12, w.Months%12; years > 0 || months > 0 {
		if years > 0 {
			fmt.Fprintf(&b, "%dy", years)
		}
		if months > 0 {
			fmt.Fprintf(&b, "%dmo", months)
		}
	}
	if weeks, days := w.Days/7, w.Days%7; weeks > 0 || days > 0 {
		if weeks > 0 {
			fmt.Fprintf(&b, "%dw", weeks)
		}
		if days > 0 {
			fmt.Fprintf(&b, "%dd", days)
		}
	}
	if b.Len() == 0 {
		return "0d"
	}
	return b.String()
}

// Label is the heading for listings limited to the window.
func (w Window) Label() string {
	switch {
	case w.Months == 0 && w.Days == 1:
		return "Today"
	case w.Months == 0 && w.Days == 7:
		return "Last week"
	case w.Months == 1 && w.Days == 0:
		return "Last month"
	case w.Months == 12 && w.Days == 0:
		return "Last year"
	case w.Months == 0 && w.Days%7 != 0:
		return fmt.Sprintf("Last %d days", w.Days)
	}
	return "Last " + w.String()
}
