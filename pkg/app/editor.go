package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/media"
)

// EditorMode says whether the editor is closed, composing a new entry, or
// editing an existing one.
type EditorMode int

const (
	Closed EditorMode = iota
	Creating
	Editing
)

func (m EditorMode) String() string {
	switch m {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return "closed"
	}
}

// EditorState is the editor mode plus the entry being edited. ID is only set
// in Editing.
type EditorState struct {
	Mode EditorMode
	ID   string
}

// ErrEditorState rejects a transition the current state does not allow.
var ErrEditorState = errors.New("app: invalid editor transition")

// Fields are the text fields the editor confirms.
type Fields struct {
	Title       string
	Description string
	Date        time.Time
}

// Editor is the single open editor of a Service. It owns the media session
// while open.
type Editor struct {
	svc     *Service
	state   EditorState
	fields  Fields
	session *media.Session
}

// NewEditor returns a closed editor over svc.
func NewEditor(svc *Service) *Editor {
	return &Editor{svc: svc}
}

// State is the current editor state.
func (ed *Editor) State() EditorState {
	return ed.state
}

// Session is the open media session, nil when closed.
func (ed *Editor) Session() *media.Session {
	return ed.session
}

// Fields are the values the editor was opened with.
func (ed *Editor) Fields() Fields {
	return ed.fields
}

// Open starts composing a new entry when id is empty, or editing id.
func (ed *Editor) Open(ctx context.Context, id string) error {
	if ed.state.Mode != Closed {
		return fmt.Errorf("%w: open while %s", ErrEditorState, ed.state.Mode)
	}
	if id == "" {
		ed.fields = Fields{Date: ed.svc.now()}
		ed.session = media.NewSession(ed.svc.Media, nil)
		ed.state = EditorState{Mode: Creating}
		return nil
	}
	e, err := ed.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	ed.fields = Fields{Title: e.Title, Description: e.Description, Date: e.Date.Time}
	ed.session = media.NewSession(ed.svc.Media, e)
	ed.state = EditorState{Mode: Editing, ID: e.ID}
	return nil
}

// Confirm writes f and the session media into the journal and closes the
// editor. When the write fails the editor stays open.
func (ed *Editor) Confirm(ctx context.Context, f Fields) (*entry.Entry, error) {
	if ed.state.Mode != Closed && ed.session.IsRecording() {
		// The clip must be on the entry before the session lets go of it.
		if _, err := ed.session.StopRecording(ctx); err != nil {
			return nil, err
		}
	}
	switch ed.state.Mode {
	case Creating:
		images, clips := ed.session.Images(), ed.session.AudioClips()
		e, err := ed.svc.Add(ctx, Draft{
			Title:       f.Title,
			Description: f.Description,
			Date:        f.Date,
			Images:      images,
			AudioClips:  clips,
		})
		if err != nil {
			return nil, err
		}
		ed.session.Commit(ctx)
		ed.close()
		return e, nil
	case Editing:
		now := ed.svc.now()
		images, clips := ed.session.Images(), ed.session.AudioClips()
		e, err := ed.svc.Update(ctx, ed.state.ID, func(e *entry.Entry) bool {
			e.Title = f.Title
			e.Description = f.Description
			e.Date = entry.Timestamp{Time: clampDate(f.Date, now)}
			e.Images = images
			e.AudioClips = clips
			return true
		})
		if err != nil {
			return nil, err
		}
		ed.session.Commit(ctx)
		ed.close()
		return e, nil
	default:
		return nil, fmt.Errorf("%w: confirm while closed", ErrEditorState)
	}
}

// Cancel closes the editor without saving. Recordings made since Open are
// deleted.
func (ed *Editor) Cancel(ctx context.Context) error {
	if ed.state.Mode == Closed {
		return fmt.Errorf("%w: cancel while closed", ErrEditorState)
	}
	ed.session.Discard(ctx)
	ed.close()
	return nil
}

func (ed *Editor) close() {
	ed.session = nil
	ed.fields = Fields{}
	ed.state = EditorState{}
}
