package media

import (
	"context"
	"fmt"
	"os/exec"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/entry"
)

// Player plays a clip and reports completion.
type Player interface {
	Play(ctx context.Context, clip entry.AudioClip) <-chan async.Result[struct{}]
}

// DefaultPlayCommand plays through the default ALSA device.
const DefaultPlayCommand = "aplay -q {path}"

// ExecPlayer plays clips with an external command; {path} is substituted.
type ExecPlayer struct {
	Command string
}

func (p *ExecPlayer) Play(ctx context.Context, clip entry.AudioClip) <-chan async.Result[struct{}] {
	args := expand(p.Command, DefaultPlayCommand, map[string]string{"{path}": clip.Path})
	return async.Go(ctx, func(ctx context.Context) (struct{}, error) {
		out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput()
		if err != nil {
			return struct{}{}, fmt.Errorf("%w: play %s: %v: %s", ErrMediaIO, clip.Path, err, out)
		}
		return struct{}{}, nil
	})
}
