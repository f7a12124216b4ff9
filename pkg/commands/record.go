package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/media"
	"tableflip.dev/diary/pkg/runner/editor"
)

func addRecord(topLevel *cobra.Command) {
	var (
		tone     float64
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "record <id>",
		Short: "Record an audio clip onto an entry",
		Long: base.Wrap80(`Record captures audio with the configured record command until Enter is
pressed. Ctrl-C discards the clip. With --tone a generated sine wave is saved
instead, which is handy for checking playback and waveforms.`),
		Example: `
diary record 3f2a
diary record 3f2a --tone 440 --duration 2s
`,
		Args: idArg(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			j, err := unlockedJournal(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			id, err := j.resolveID(ctx, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			c := editor.Compose{
				Service: j.Service,
				ID:      id,
				Record:  true,
				ShowID:  true,
				JSON:    output.JSON,
			}
			if tone > 0 {
				j.Service.Media.Recorder = &media.SampleRecorder{Samples: media.Tone(tone, duration)}
			} else {
				c.WaitStop = editor.StopOnEnter(os.Stdin, cmd.ErrOrStderr())
			}
			return output.HandleError(c.Do(ctx))
		},
	}

	cmd.Flags().Float64Var(&tone, "tone", 0, "Save a sine wave of this frequency in Hz instead of recording.")
	cmd.Flags().DurationVar(&duration, "duration", time.Second, "Length of the --tone clip.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
