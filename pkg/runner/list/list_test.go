package list

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/journal/viewmodel"
	"tableflip.dev/diary/pkg/stats"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/timeutil"
)

type testConfig struct{ path string }

func (t testConfig) BasePath() string      { return t.path }
func (t testConfig) AudioDir() string      { return t.path + "/audio" }
func (t testConfig) RecordCommand() string { return "" }
func (t testConfig) PlayCommand() string   { return "" }
func (t testConfig) PrintCommand() string  { return "" }
func (t testConfig) LogLevel() string      { return "warn" }

func init() {
	color.NoColor = true
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Load() error = %v", err)
	}
	svc := &app.Service{Persistence: p}
	ctx := context.Background()
	for i, title := range []string{"first", "second", "third"} {
		if _, err := svc.Add(ctx, app.Draft{Title: title, Date: time.Now().AddDate(0, 0, -i)}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	return svc
}

func TestListSections(t *testing.T) {
	var out bytes.Buffer
	l := &List{Service: newService(t), Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"Today - 1 entry", "Yesterday - 1 entry", "first", "third"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestListFlatJSON(t *testing.T) {
	var out bytes.Buffer
	l := &List{Service: newService(t), Flat: true, JSON: true, Query: viewmodel.Query{SortAscending: true}, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var got []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if len(got) != 3 || got[0].Title != "third" || got[2].Title != "first" {
		t.Fatalf("flat ascending = %+v", got)
	}
}

func TestListWindow(t *testing.T) {
	var out bytes.Buffer
	l := &List{Service: newService(t), Window: timeutil.Window{Days: 2}, JSON: true, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var got app.ReportResult
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 2 {
		t.Fatalf("Total = %d, want 2", got.Total)
	}
}

func TestStatsJSON(t *testing.T) {
	var out bytes.Buffer
	s := &Stats{Service: newService(t), JSON: true, Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var got stats.Stats
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.DayStreak != 3 || got.DaysJournalled != 3 || got.TotalWords != 3 {
		t.Fatalf("stats = %+v", got)
	}
}
