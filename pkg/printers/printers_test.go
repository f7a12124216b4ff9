package printers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal/viewmodel"
	"tableflip.dev/diary/pkg/stats"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func init() {
	color.NoColor = true
}

func sample() *entry.Entry {
	e := entry.New("Trip <north>", "We saw **whales** today.", time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local))
	e.Images = []entry.Image{entry.NewImage("whale.png", pngHeader)}
	return e
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, sample()); err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"<h1>Trip &lt;north&gt;</h1>",
		"<strong>whales</strong>",
		"Monday, 19 October",
		"data:image/png;base64,",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("page missing %q:\n%s", want, got)
		}
	}
}

func TestHTMLHiddenTitle(t *testing.T) {
	e := sample()
	e.ShowTitle = false
	var buf bytes.Buffer
	if err := HTML(&buf, e); err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if strings.Contains(buf.String(), "<h1>") {
		t.Fatalf("hidden title printed:\n%s", buf.String())
	}
}

func TestFilePrintService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "entry.html")
	p := &FilePrintService{Path: path}
	res := async.Await(context.Background(), p.Print(context.Background(), sample()))
	if res.Err != nil {
		t.Fatalf("Print() error = %v", res.Err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !bytes.Contains(b, []byte("<!DOCTYPE html>")) {
		t.Fatalf("unexpected page: %s", b)
	}
}

func TestSections(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	e := sample()
	e.IsBookmarked = true
	pp.Sections([]viewmodel.Section{{Title: "Today", Entries: []*entry.Entry{e}}})
	got := buf.String()
	if !strings.Contains(got, "Today - 1 entry") || !strings.Contains(got, "★+ Trip <north>") {
		t.Fatalf("Sections() = %q", got)
	}

	buf.Reset()
	pp.Sections(nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("Sections(nil) = %q", buf.String())
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Stats(stats.Stats{DayStreak: 1, TotalWords: 42, DaysJournalled: 3})
	got := buf.String()
	for _, want := range []string{"1 day", "42", "3 days"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Stats() missing %q: %q", want, got)
		}
	}
}

func TestWaveformLine(t *testing.T) {
	got := WaveformLine([]float64{0, 0.5, 1})
	if got != "▁▄█" {
		t.Fatalf("WaveformLine() = %q", got)
	}
	if got := WaveformLine([]float64{0, 0}); got != "▁▁" {
		t.Fatalf("WaveformLine(silence) = %q", got)
	}
}

func TestPrintMonth(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.PrintMonth(time.Date(2026, 2, 1, 1, 0, 0, 0, time.Local), sample())
	got := buf.String()
	if !strings.Contains(got, "February") || !strings.Contains(got, "28") || strings.Contains(got, "29") {
		t.Fatalf("PrintMonth() = %q", got)
	}
}
