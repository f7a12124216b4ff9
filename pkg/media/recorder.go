package media

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"tableflip.dev/diary/pkg/entry"
)

// Recorder is the device audio subsystem.
type Recorder interface {
	Start(ctx context.Context, path string, format Format) (Handle, error)
}

// Handle is an in-progress recording.
type Handle interface {
	Stop() (entry.AudioClip, error)
}

// DefaultRecordCommand captures from the default ALSA device.
const DefaultRecordCommand = "arecord -q -f S16_LE -r {rate} -c {channels} -t wav {path}"

// ExecRecorder records by running an external capture command. The command
// template may reference {path}, {rate} and {channels}.
type ExecRecorder struct {
	Command string
}

func (r *ExecRecorder) Start(ctx context.Context, path string, format Format) (Handle, error) {
	args := expand(r.Command, DefaultRecordCommand, map[string]string{
		"{path}":     path,
		"{rate}":     strconv.Itoa(format.SampleRate),
		"{channels}": strconv.Itoa(format.Channels),
	})
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrMediaIO, args[0], err)
	}
	h := &execHandle{cmd: cmd, path: path, started: time.Now(), done: make(chan struct{})}
	go func() {
		select {
		case <-ctx.Done():
			_ = h.interrupt()
		case <-h.done:
		}
	}()
	return h, nil
}

type execHandle struct {
	cmd     *exec.Cmd
	path    string
	started time.Time

	once sync.Once
	done chan struct{}
}

func (h *execHandle) interrupt() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Signal(os.Interrupt)
}

// Stop interrupts the capture command so it can finalise the file.
func (h *execHandle) Stop() (entry.AudioClip, error) {
	var waitErr error
	h.once.Do(func() {
		_ = h.interrupt()
		waitErr = h.cmd.Wait()
		close(h.done)
	})
	if _, err := os.Stat(h.path); err != nil {
		if waitErr != nil {
			return entry.AudioClip{}, fmt.Errorf("%w: recorder exited: %v", ErrMediaIO, waitErr)
		}
		return entry.AudioClip{}, fmt.Errorf("%w: %v", ErrMediaIO, err)
	}
	return entry.AudioClip{Path: h.path, Recorded: entry.Timestamp{Time: h.started}}, nil
}

// SampleRecorder writes samples produced in memory to a WAV file on Stop.
type SampleRecorder struct {
	// Samples returns PCM values for the clip in the given format.
	Samples func(format Format) []int
}

func (r *SampleRecorder) Start(_ context.Context, path string, format Format) (Handle, error) {
	if r.Samples == nil {
		return nil, fmt.Errorf("%w: no sample source", ErrMediaIO)
	}
	return &sampleHandle{r: r, path: path, format: format, started: time.Now()}, nil
}

type sampleHandle struct {
	r       *SampleRecorder
	path    string
	format  Format
	started time.Time
}

func (h *sampleHandle) Stop() (entry.AudioClip, error) {
	if err := WriteWAV(h.path, h.format, h.r.Samples(h.format)); err != nil {
		return entry.AudioClip{}, err
	}
	return entry.AudioClip{Path: h.path, Recorded: entry.Timestamp{Time: h.started}}, nil
}

// WriteWAV encodes samples as PCM WAV at path.
func WriteWAV(path string, format Format, samples []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrMediaIO, path, err)
	}
	enc := wav.NewEncoder(f, format.SampleRate, format.BitDepth, format.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
		Data:           samples,
		SourceBitDepth: format.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: encode %s: %v", ErrMediaIO, path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: finalise %s: %v", ErrMediaIO, path, err)
	}
	return f.Close()
}

// Tone returns a sample source for a sine wave that fades out, handy for
// checking the audio path without a microphone.
func Tone(hz float64, d time.Duration) func(Format) []int {
	return func(format Format) []int {
		n := int(d.Seconds() * float64(format.SampleRate))
		peak := float64(int(1)<<(format.BitDepth-1) - 1)
		out := make([]int, n*format.Channels)
		for i := 0; i < n; i++ {
			fade := 1 - float64(i)/float64(n)
			v := int(peak * fade * math.Sin(2*math.Pi*hz*float64(i)/float64(format.SampleRate)))
			for c := 0; c < format.Channels; c++ {
				out[i*format.Channels+c] = v
			}
		}
		return out
	}
}

func expand(template, fallback string, vars map[string]string) []string {
	if strings.TrimSpace(template) == "" {
		template = fallback
	}
	fields := strings.Fields(template)
	for i, f := range fields {
		for k, v := range vars {
			f = strings.ReplaceAll(f, k, v)
		}
		fields[i] = f
	}
	return fields
}
