package media

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// Waveform decodes the clip at path and returns WaveformBuckets levels in
// [0, 1] for drawing. Only the first channel is used.
func Waveform(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrMediaIO, path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a wav file", ErrMediaIO, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMediaIO, path, err)
	}

	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}
	if depth == 0 {
		depth = 16
	}
	scale := float64(int(1) << (depth - 1))

	levels := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		v := float64(buf.Data[i]) / scale
		if v < 0 {
			v = -v
		}
		if v > 1 {
			v = 1
		}
		levels = append(levels, v)
	}
	return Downsample(levels, WaveformBuckets), nil
}

// Downsample picks one sample every len/buckets positions. Inputs shorter
// than buckets are returned as absolute values unchanged.
func Downsample(samples []float64, buckets int) []float64 {
	if len(samples) == 0 || buckets <= 0 {
		return nil
	}
	stride := len(samples) / buckets
	if stride < 1 {
		stride = 1
	}
	n := buckets
	if len(samples) < n {
		n = len(samples)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v := samples[i*stride]
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}
