package editor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/media"
	"tableflip.dev/diary/pkg/store"
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
	dir := t.TempDir()
	p, err := store.Load(testConfig{path: dir})
	if err != nil {
		t.Fatalf("store.Load() error = %v", err)
	}
	return &app.Service{
		Persistence: p,
		Media: media.Options{
			Dir:      filepath.Join(dir, "audio"),
			Recorder: &media.SampleRecorder{Samples: media.Tone(440, 200*time.Millisecond)},
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestComposeNewEntryWithImages(t *testing.T) {
	svc := newService(t)
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	if err := os.WriteFile(img, []byte("\x89PNG\r\n\x1a\nimage"), 0o644); err != nil {
		t.Fatal(err)
	}
	note := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(note, []byte("just text"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	c := &Compose{
		Service: svc,
		Title:   ptr("Beach"),
		Images:  []string{img, img, note},
		Out:     &out,
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !strings.Contains(out.String(), "skipped") || !strings.Contains(out.String(), "Beach") {
		t.Fatalf("output = %q", out.String())
	}
	all, _ := svc.Entries(context.Background())
	if len(all) != 1 || len(all[0].Images) != 1 {
		t.Fatalf("entries = %+v", all)
	}
}

func TestComposeRejectsBlank(t *testing.T) {
	svc := newService(t)
	c := &Compose{Service: svc, Title: ptr("  "), Out: &bytes.Buffer{}}
	if err := c.Do(context.Background()); !errors.Is(err, ErrBlank) {
		t.Fatalf("Do() error = %v, want ErrBlank", err)
	}
}

func TestComposeRecordAndDetach(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	e, err := svc.Add(ctx, app.Draft{Title: "voice"})
	if err != nil {
		t.Fatal(err)
	}

	rec := &Compose{Service: svc, ID: e.ID, Record: true, Out: &bytes.Buffer{}}
	if err := rec.Do(ctx); err != nil {
		t.Fatalf("record: %v", err)
	}
	got, _ := svc.Get(ctx, e.ID)
	if len(got.AudioClips) != 1 {
		t.Fatalf("clips = %d, want 1", len(got.AudioClips))
	}
	path := got.AudioClips[0].Path

	var wave bytes.Buffer
	if err := (&Waveform{Service: svc, ID: e.ID, Index: 0, Out: &wave}).Do(ctx); err != nil {
		t.Fatalf("waveform: %v", err)
	}
	if n := len([]rune(strings.TrimSpace(wave.String()))); n != media.WaveformBuckets {
		t.Fatalf("waveform width = %d", n)
	}

	detach := &Compose{Service: svc, ID: e.ID, RemoveClips: []int{0}, Out: &bytes.Buffer{}}
	if err := detach.Do(ctx); err != nil {
		t.Fatalf("detach: %v", err)
	}
	got, _ = svc.Get(ctx, e.ID)
	if len(got.AudioClips) != 0 {
		t.Fatalf("clips after detach = %d", len(got.AudioClips))
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("clip file kept: %v", err)
	}
}

func TestComposeDiscardedRecording(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	e, err := svc.Add(ctx, app.Draft{Title: "voice"})
	if err != nil {
		t.Fatal(err)
	}
	rec := &Compose{
		Service:  svc,
		ID:       e.ID,
		Record:   true,
		WaitStop: func(context.Context) bool { return false },
		Out:      &bytes.Buffer{},
	}
	if err := rec.Do(ctx); err == nil {
		t.Fatalf("Do() expected error for discarded recording")
	}
	got, _ := svc.Get(ctx, e.ID)
	if len(got.AudioClips) != 0 {
		t.Fatalf("clips = %d, want 0", len(got.AudioClips))
	}
	files, _ := os.ReadDir(svc.Media.Dir)
	if len(files) != 0 {
		t.Fatalf("audio dir has %d files after discard", len(files))
	}
}

func TestStopOnEnter(t *testing.T) {
	wait := StopOnEnter(strings.NewReader("\n"), &bytes.Buffer{})
	if !wait(context.Background()) {
		t.Fatalf("StopOnEnter() = false after Enter")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, w, _ := os.Pipe()
	defer r.Close()
	defer w.Close()
	if StopOnEnter(r, &bytes.Buffer{})(ctx) {
		t.Fatalf("StopOnEnter() = true after cancel")
	}
}

func TestRemoveDescending(t *testing.T) {
	var got []int
	err := removeDescending([]int{0, 2, 2, 1}, func(i int) error {
		got = append(got, i)
		return nil
	})
	if err != nil || len(got) != 3 || got[0] != 2 || got[2] != 0 {
		t.Fatalf("removed = %v, %v", got, err)
	}
}
