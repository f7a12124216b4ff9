// Package media manages attachments while an entry is being edited: picked
// images, recorded audio clips, playback and waveform sampling.
package media

import (
	"errors"
)

var (
	// ErrMediaIO wraps picker, recorder and player failures. Callers log
	// these and carry on; they never abort an edit.
	ErrMediaIO = errors.New("media: io failure")
	// ErrRecording is returned when starting a recording while one runs.
	ErrRecording = errors.New("media: already recording")
	// ErrNotRecording is returned when stopping without a recording.
	ErrNotRecording = errors.New("media: not recording")
	// ErrPicking is returned when the picker is already open.
	ErrPicking = errors.New("media: picker already open")
	// ErrPlaying is returned when a clip is already playing.
	ErrPlaying = errors.New("media: already playing")
	// ErrNoClip is returned for an out of range clip index.
	ErrNoClip = errors.New("media: no such clip")
	// ErrNoImage is returned for an out of range image index.
	ErrNoImage = errors.New("media: no such image")
)

// Format describes how clips are captured.
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat is 12kHz mono. Clips are stored as 16-bit PCM WAV so they can
// be decoded for waveforms without a codec.
var DefaultFormat = Format{
	Codec:      "wav",
	SampleRate: 12000,
	Channels:   1,
	BitDepth:   16,
}

// WaveformBuckets is the number of bars drawn for a clip.
const WaveformBuckets = 60
