package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/runner/editor"
)

func addPlay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "play <id> <n>",
		Short: "Play a recording of an entry",
		Example: `
diary play 3f2a 1
`,
		Args: idArg(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			at, err := position(args[1])
			if err != nil {
				return output.HandleError(err)
			}
			j, err := unlockedJournal(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			id, err := j.resolveID(ctx, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			p := editor.Play{
				Service: j.Service,
				ID:      id,
				Index:   at,
			}
			return output.HandleError(p.Do(ctx))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWaveform(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "waveform <id> <n>",
		Short: "Draw the waveform of a recording",
		Example: `
diary waveform 3f2a 1
`,
		Args: idArg(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			at, err := position(args[1])
			if err != nil {
				return output.HandleError(err)
			}
			j, err := unlockedJournal(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			id, err := j.resolveID(ctx, args[0])
			if err != nil {
				return output.HandleError(err)
			}
			w := editor.Waveform{
				Service: j.Service,
				ID:      id,
				Index:   at,
				JSON:    output.JSON,
			}
			return output.HandleError(w.Do(ctx))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
