package app

import (
	"context"
	"errors"
	"os"
	"testing"

	"tableflip.dev/diary/pkg/entry"
)

func TestEditorTransitions(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ed := NewEditor(svc)

	if _, err := ed.Confirm(ctx, Fields{}); !errors.Is(err, ErrEditorState) {
		t.Fatalf("Confirm() while closed error = %v", err)
	}
	if err := ed.Cancel(ctx); !errors.Is(err, ErrEditorState) {
		t.Fatalf("Cancel() while closed error = %v", err)
	}
	if err := ed.Open(ctx, ""); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := ed.State(); got.Mode != Creating || got.ID != "" {
		t.Fatalf("State() = %+v", got)
	}
	if err := ed.Open(ctx, ""); !errors.Is(err, ErrEditorState) {
		t.Fatalf("Open() while open error = %v", err)
	}
	e, err := ed.Confirm(ctx, Fields{Title: "Hello", Description: "world"})
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if ed.State().Mode != Closed || ed.Session() != nil {
		t.Fatalf("editor not closed after confirm")
	}

	if err := ed.Open(ctx, e.ID); err != nil {
		t.Fatalf("Open(%s) error = %v", e.ID, err)
	}
	if got := ed.State(); got.Mode != Editing || got.ID != e.ID {
		t.Fatalf("State() = %+v", got)
	}
	if ed.Fields().Title != "Hello" {
		t.Fatalf("Fields() = %+v", ed.Fields())
	}
}

func TestEditorOpenUnknown(t *testing.T) {
	svc, _ := newService(t)
	ed := NewEditor(svc)
	if err := ed.Open(context.Background(), "nope"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("Open() error = %v", err)
	}
	if ed.State().Mode != Closed {
		t.Fatalf("editor opened for unknown id")
	}
}

func TestEditorEditKeepsIDAndMergesMedia(t *testing.T) {
	svc, _ := newService(t, dated("x", "X", 1))
	ctx := context.Background()
	ed := NewEditor(svc)
	if err := ed.Open(ctx, "x"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	img := entry.NewImage("a.png", []byte("\x89PNG\r\n\x1a\nabc"))
	ed.Session().AddImage(img)
	ed.Session().AddImage(img)
	f := ed.Fields()
	f.Title = "renamed"
	e, err := ed.Confirm(ctx, f)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if e.ID != "x" || e.Title != "renamed" || len(e.Images) != 1 {
		t.Fatalf("Confirm() = %+v", e)
	}
	if !e.Date.SameDay(now.AddDate(0, 0, -1)) {
		t.Fatalf("date changed: %v", e.Date)
	}
}

func TestEditorCancelDeletesNewRecordings(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ed := NewEditor(svc)
	if err := ed.Open(ctx, ""); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := ed.Session().StartRecording(ctx); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}
	clip, err := ed.Session().StopRecording(ctx)
	if err != nil {
		t.Fatalf("StopRecording() error = %v", err)
	}
	if _, err := os.Stat(clip.Path); err != nil {
		t.Fatalf("recording missing: %v", err)
	}
	if err := ed.Cancel(ctx); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, err := os.Stat(clip.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("recording kept after cancel: %v", err)
	}
	all, _ := svc.Entries(ctx)
	if len(all) != 0 {
		t.Fatalf("entries after cancel = %d", len(all))
	}
}

func TestEditorConfirmWhileRecordingAttachesClip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ed := NewEditor(svc)
	if err := ed.Open(ctx, ""); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := ed.Session().StartRecording(ctx); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}
	e, err := ed.Confirm(ctx, Fields{Title: "voice"})
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if len(e.AudioClips) != 1 {
		t.Fatalf("clips = %d, want 1", len(e.AudioClips))
	}
	if _, err := os.Stat(e.AudioClips[0].Path); err != nil {
		t.Fatalf("attached recording missing: %v", err)
	}
	files, err := os.ReadDir(svc.Media.Dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("recordings on disk = %d, want 1", len(files))
	}
}
