package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDownsample(t *testing.T) {
	samples := make([]float64, 600)
	for i := range samples {
		samples[i] = -float64(i)
	}
	got := Downsample(samples, WaveformBuckets)
	if len(got) != WaveformBuckets {
		t.Fatalf("expected %d buckets, got %d", WaveformBuckets, len(got))
	}
	for i, v := range got {
		if v != float64(i*10) {
			t.Fatalf("bucket %d: expected %v, got %v", i, float64(i*10), v)
		}
	}
}

func TestDownsampleShortInput(t *testing.T) {
	got := Downsample([]float64{-0.5, 0.25}, WaveformBuckets)
	if len(got) != 2 || got[0] != 0.5 || got[1] != 0.25 {
		t.Fatalf("unexpected %v", got)
	}
	if Downsample(nil, WaveformBuckets) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestWaveformOfTone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := WriteWAV(path, DefaultFormat, Tone(310, time.Second)(DefaultFormat)); err != nil {
		t.Fatalf("write: %v", err)
	}
	levels, err := Waveform(path)
	if err != nil {
		t.Fatalf("waveform: %v", err)
	}
	if len(levels) != WaveformBuckets {
		t.Fatalf("expected %d levels, got %d", WaveformBuckets, len(levels))
	}
	peak := 0.0
	for _, v := range levels {
		if v < 0 || v > 1 {
			t.Fatalf("level out of range: %v", v)
		}
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		t.Fatalf("expected a non-silent waveform")
	}
}

func TestWaveformRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not audio at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Waveform(path); !errors.Is(err, ErrMediaIO) {
		t.Fatalf("expected ErrMediaIO, got %v", err)
	}
}
