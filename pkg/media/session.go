package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/logging"
)

// RecorderState is the recording half of the session state machine.
type RecorderState int

const (
	Idle RecorderState = iota
	Recording
)

func (s RecorderState) String() string {
	switch s {
	case Recording:
		return "recording"
	default:
		return "idle"
	}
}

// Options wires a session to its collaborators.
type Options struct {
	// Dir is where new recordings are written.
	Dir      string
	Recorder Recorder
	Player   Player
	Logger   logging.Logger
}

// Session is the transient media state of one open editor. It is owned by a
// single goroutine; collaborator results come back through async.Result.
//
// Recordings made during the session are tracked until Commit. Discard
// deletes any that were never committed.
type Session struct {
	opts Options

	images  []entry.Image
	digests map[string]struct{}
	clips   []entry.AudioClip
	fresh   map[string]struct{}

	state   RecorderState
	handle  Handle
	pending string
	picking bool
	playing bool
}

// NewSession opens a session, seeded with the media of seed when editing.
func NewSession(opts Options, seed *entry.Entry) *Session {
	if opts.Logger == nil {
		opts.Logger = logging.FromContext(context.Background())
	}
	s := &Session{
		opts:    opts,
		digests: make(map[string]struct{}),
		fresh:   make(map[string]struct{}),
	}
	if seed != nil {
		for _, img := range seed.Images {
			s.AddImage(img)
		}
		s.clips = append(s.clips, seed.AudioClips...)
	}
	return s
}

// Images returns the selected images in display order.
func (s *Session) Images() []entry.Image {
	return append([]entry.Image(nil), s.images...)
}

// AudioClips returns the attached clips in order.
func (s *Session) AudioClips() []entry.AudioClip {
	return append([]entry.AudioClip(nil), s.clips...)
}

// State is the recorder state.
func (s *Session) State() RecorderState {
	return s.state
}

// IsRecording reports whether a recording is in progress.
func (s *Session) IsRecording() bool {
	return s.state == Recording
}

// IsPicking reports whether the picker is open.
func (s *Session) IsPicking() bool {
	return s.picking
}

// AddImage appends img unless an image with identical bytes is already
// selected. It reports whether the image was added.
func (s *Session) AddImage(img entry.Image) bool {
	d := img.Digest()
	if _, ok := s.digests[d]; ok {
		return false
	}
	s.digests[d] = struct{}{}
	s.images = append(s.images, img)
	return true
}

// RemoveImage drops the image at index i.
func (s *Session) RemoveImage(i int) error {
	if i < 0 || i >= len(s.images) {
		return ErrNoImage
	}
	delete(s.digests, s.images[i].Digest())
	s.images = append(s.images[:i:i], s.images[i+1:]...)
	return nil
}

// Pick opens the picker and adds every returned image that is not already
// selected. Picker failures are logged; images that did come back are kept.
func (s *Session) Pick(ctx context.Context, p Picker) (int, error) {
	if s.picking {
		return 0, ErrPicking
	}
	s.picking = true
	defer func() { s.picking = false }()

	res := async.Await(ctx, p.Pick(ctx, Request{AllowMultiple: true, ImagesOnly: true}))
	added := 0
	for _, img := range res.Value {
		if s.AddImage(img) {
			added++
		}
	}
	if res.Err != nil {
		s.opts.Logger.Warn(ctx, "image picker failed", "err", res.Err)
		return added, res.Err
	}
	return added, nil
}

// StartRecording moves Idle to Recording, writing into a fresh file.
func (s *Session) StartRecording(ctx context.Context) error {
	if s.state == Recording {
		return ErrRecording
	}
	if s.opts.Recorder == nil {
		return fmt.Errorf("%w: no recorder configured", ErrMediaIO)
	}
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: ensure %s: %v", ErrMediaIO, s.opts.Dir, err)
	}
	path := filepath.Join(s.opts.Dir, entry.NewID()+".wav")
	h, err := s.opts.Recorder.Start(ctx, path, DefaultFormat)
	if err != nil {
		s.opts.Logger.Warn(ctx, "recorder start failed", "path", path, "err", err)
		return err
	}
	s.handle = h
	s.pending = path
	s.state = Recording
	return nil
}

// StopRecording moves Recording to Idle and appends the new clip.
func (s *Session) StopRecording(ctx context.Context) (entry.AudioClip, error) {
	if s.state != Recording {
		return entry.AudioClip{}, ErrNotRecording
	}
	h, path := s.handle, s.pending
	s.handle, s.pending, s.state = nil, "", Idle

	clip, err := h.Stop()
	if err != nil {
		s.opts.Logger.Warn(ctx, "recorder stop failed", "path", path, "err", err)
		removeFile(path)
		return entry.AudioClip{}, err
	}
	s.clips = append(s.clips, clip)
	s.fresh[clip.Path] = struct{}{}
	return clip, nil
}

// RemoveClip deletes the clip's file and drops it from the session. There is
// no undo.
func (s *Session) RemoveClip(ctx context.Context, i int) error {
	if i < 0 || i >= len(s.clips) {
		return ErrNoClip
	}
	clip := s.clips[i]
	if err := os.Remove(clip.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.opts.Logger.Warn(ctx, "remove clip failed", "path", clip.Path, "err", err)
	}
	delete(s.fresh, clip.Path)
	s.clips = append(s.clips[:i:i], s.clips[i+1:]...)
	return nil
}

// Play plays clip i and waits for it to finish.
func (s *Session) Play(ctx context.Context, i int) error {
	if i < 0 || i >= len(s.clips) {
		return ErrNoClip
	}
	if s.playing {
		return ErrPlaying
	}
	if s.opts.Player == nil {
		return fmt.Errorf("%w: no player configured", ErrMediaIO)
	}
	s.playing = true
	defer func() { s.playing = false }()

	res := async.Await(ctx, s.opts.Player.Play(ctx, s.clips[i]))
	if res.Err != nil {
		s.opts.Logger.Warn(ctx, "playback failed", "path", s.clips[i].Path, "err", res.Err)
		return res.Err
	}
	return nil
}

// Commit hands the media over to an entry. Recordings are no longer owned by
// the session afterwards.
func (s *Session) Commit(ctx context.Context) ([]entry.Image, []entry.AudioClip) {
	if s.state == Recording {
		if _, err := s.StopRecording(ctx); err != nil {
			s.opts.Logger.Warn(ctx, "stop on commit failed", "err", err)
		}
	}
	s.fresh = make(map[string]struct{})
	return s.Images(), s.AudioClips()
}

// Discard abandons the session, deleting recordings that were never
// committed. Clips carried in from the entry are left alone.
func (s *Session) Discard(ctx context.Context) {
	if s.state == Recording {
		if _, err := s.StopRecording(ctx); err != nil {
			s.opts.Logger.Warn(ctx, "stop on discard failed", "err", err)
		}
	}
	for path := range s.fresh {
		removeFile(path)
	}
	s.fresh = make(map[string]struct{})
	s.images = nil
	s.digests = make(map[string]struct{})
	s.clips = nil
}

func removeFile(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
