// Package editor provides the runners that open the entry editor: composing
// and changing entries, attaching media, recording and playing clips.
package editor

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/media"
	"tableflip.dev/diary/pkg/printers"
)

// ErrBlank rejects saving a new entry with nothing in it.
var ErrBlank = errors.New("entry needs a title or a body")

// Compose opens the editor on a new entry (ID empty) or an existing one,
// applies the requested changes and confirms. Anything that fails before the
// confirm cancels the edit, so recordings made by this run are removed.
type Compose struct {
	Service *app.Service
	ID      string

	// Nil fields keep the current value.
	Title       *string
	Description *string
	Date        *time.Time

	// Images are files to attach.
	Images []string
	// RemoveImages and RemoveClips are zero-based indexes to drop.
	RemoveImages []int
	RemoveClips  []int

	Record bool
	// WaitStop blocks while recording. It reports whether to keep the clip.
	WaitStop func(ctx context.Context) bool

	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Compose) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

func (n *Compose) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no journal")
	}
	log := logging.FromContext(ctx)
	ed := app.NewEditor(n.Service)
	if err := ed.Open(ctx, n.ID); err != nil {
		return err
	}

	f := ed.Fields()
	if n.Title != nil {
		f.Title = *n.Title
	}
	if n.Description != nil {
		f.Description = *n.Description
	}
	if n.Date != nil {
		f.Date = *n.Date
	}

	s := ed.Session()
	if len(n.Images) > 0 {
		added, err := s.Pick(ctx, &media.FilePicker{Paths: n.Images})
		if err != nil {
			// Files that could be read are still attached.
			_, _ = color.New(color.FgYellow).Fprintf(n.out(), "skipped: %v\n", err)
		}
		if dup := len(n.Images) - added; dup > 0 && err == nil {
			log.Info(ctx, "duplicate images skipped", "count", dup)
		}
	}
	if err := removeDescending(n.RemoveImages, s.RemoveImage); err != nil {
		_ = ed.Cancel(ctx)
		return err
	}
	if err := removeDescending(n.RemoveClips, func(i int) error { return s.RemoveClip(ctx, i) }); err != nil {
		_ = ed.Cancel(ctx)
		return err
	}

	if n.Record {
		if err := s.StartRecording(ctx); err != nil {
			_ = ed.Cancel(ctx)
			return err
		}
		keep := n.WaitStop == nil || n.WaitStop(ctx)
		if !keep {
			_ = ed.Cancel(ctx)
			return errors.New("recording discarded")
		}
		if _, err := s.StopRecording(ctx); err != nil {
			_ = ed.Cancel(ctx)
			return err
		}
	}

	if ed.State().Mode == app.Creating && blank(f) && len(s.Images()) == 0 && len(s.AudioClips()) == 0 {
		_ = ed.Cancel(ctx)
		return ErrBlank
	}

	e, err := ed.Confirm(ctx, f)
	if err != nil {
		_ = ed.Cancel(ctx)
		return err
	}
	return n.print(e)
}

func (n *Compose) print(e *entry.Entry) error {
	if n.JSON {
		return json.NewEncoder(n.out()).Encode(e)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.out()}
	pp.Collection(e)
	return nil
}

func blank(f app.Fields) bool {
	return strings.TrimSpace(f.Title) == "" && strings.TrimSpace(f.Description) == ""
}

// removeDescending removes from the back so earlier indexes stay valid.
func removeDescending(idx []int, remove func(int) error) error {
	sorted := append([]int(nil), idx...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			continue
		}
		if err := remove(v); err != nil {
			return fmt.Errorf("%w: %d", err, v+1)
		}
	}
	return nil
}

// StopOnEnter returns a WaitStop that keeps the clip when a line is read
// from in and discards it when ctx ends first.
func StopOnEnter(in io.Reader, prompt io.Writer) func(context.Context) bool {
	return func(ctx context.Context) bool {
		_, _ = color.New(color.FgRed, color.Bold).Fprint(prompt, "● recording")
		_, _ = fmt.Fprintln(prompt, ", press Enter to stop or Ctrl-C to discard")
		line := make(chan struct{})
		go func() {
			_, _ = bufio.NewReader(in).ReadString('\n')
			close(line)
		}()
		select {
		case <-line:
			return true
		case <-ctx.Done():
			return false
		}
	}
}

// Play plays clip Index of entry ID.
type Play struct {
	Service *app.Service
	ID      string
	Index   int
}

func (n *Play) Do(ctx context.Context) error {
	ed := app.NewEditor(n.Service)
	if err := ed.Open(ctx, n.ID); err != nil {
		return err
	}
	defer func() { _ = ed.Cancel(ctx) }()
	return ed.Session().Play(ctx, n.Index)
}

// Waveform draws clip Index of entry ID.
type Waveform struct {
	Service *app.Service
	ID      string
	Index   int
	JSON    bool
	Out     io.Writer
}

func (n *Waveform) Do(ctx context.Context) error {
	e, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.Index < 0 || n.Index >= len(e.AudioClips) {
		return media.ErrNoClip
	}
	levels, err := media.Waveform(e.AudioClips[n.Index].Path)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		return json.NewEncoder(out).Encode(levels)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Waveform(levels)
	return nil
}
