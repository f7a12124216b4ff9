package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal/viewmodel"
	"tableflip.dev/diary/pkg/stats"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0c2b1b7e-07f4-4c6a-9a53-3cb6f1b1a9d2  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Sections prints grouped entries, one titled block per section.
func (pp *PrettyPrint) Sections(sections []viewmodel.Section) {
	if len(sections) == 0 {
		pp.Collection()
		return
	}
	for _, s := range sections {
		pp.TitleWithCount(s.Title, len(s.Entries))
		pp.Collection(s.Entries...)
	}
}

func (pp *PrettyPrint) Collection(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Faint)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), e.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(len(spacing)-len(e.ID), 1)))
		}
		_, _ = d.Fprintf(pp.out(), "%s ", e.Date.Local().Format("Jan _2"))
		_, _ = t.Fprintf(pp.out(), "%s %s\n", marker(e), e.Heading())
	}
	_, _ = t.Fprintln(pp.out())
}

func marker(e *entry.Entry) string {
	m := " "
	if e.IsBookmarked {
		m = "★"
	}
	if len(e.Images) > 0 || len(e.AudioClips) > 0 {
		m += "+"
	} else {
		m += " "
	}
	return m
}

// Entry writes a single entry in full, media summary included.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	if e == nil {
		return
	}
	bold := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	if pp.ShowID {
		_, _ = faint.Fprintln(pp.out(), e.ID)
	}
	if e.ShowTitle && strings.TrimSpace(e.Title) != "" {
		_, _ = bold.Fprintln(pp.out(), e.Title)
	}
	_, _ = fmt.Fprintln(pp.out(), e.Description)
	_, _ = faint.Fprintln(pp.out(), e.Date.Footer())

	if len(e.Images) == 0 && len(e.AudioClips) == 0 {
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, img := range e.Images {
		tbl.AddRow(fmt.Sprintf("image %d", i+1), img.Name, img.ContentType, fmt.Sprintf("%d bytes", len(img.Data)))
	}
	for i, clip := range e.AudioClips {
		tbl.AddRow(fmt.Sprintf("audio %d", i+1), clip.Path, "", clip.Recorded.Local().Format("2006-01-02 15:04"))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) Stats(s stats.Stats) {
	pp.Title("Journal")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Day streak", plural(s.DayStreak, "day"))
	tbl.AddRow("Words", s.TotalWords)
	tbl.AddRow("Days journalled", plural(s.DaysJournalled, "day"))
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

var bars = []rune("▁▂▃▄▅▆▇█")

// Waveform draws normalised levels as one row of block characters.
func (pp *PrettyPrint) Waveform(levels []float64) {
	_, _ = fmt.Fprintln(pp.out(), WaveformLine(levels))
}

// WaveformLine scales levels against the loudest one.
func WaveformLine(levels []float64) string {
	peak := 0.0
	for _, l := range levels {
		peak = max(peak, l)
	}
	var b strings.Builder
	for _, l := range levels {
		i := 0
		if peak > 0 {
			i = int(l / peak * float64(len(bars)-1))
		}
		b.WriteRune(bars[i])
	}
	return b.String()
}
