package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/runner/editor"
)

func addAttach(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "attach <id> <image...>",
		Short: "Attach images to an entry",
		Long: base.Wrap80(`Attach adds image files to an entry. Files that are not images are skipped
and an image already on the entry is not added twice.`),
		Example: `
diary attach 3f2a lake.jpg dock.png
`,
		Args: cobra.MinimumNArgs(2),
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
				Images:  args[1:],
				ShowID:  true,
				JSON:    output.JSON,
			}
			return output.HandleError(c.Do(ctx))
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addDetach(topLevel *cobra.Command) {
	var clip bool

	cmd := &cobra.Command{
		Use:   "detach <id> <n>",
		Short: "Remove an image, or with --clip a recording, from an entry",
		Long: base.Wrap80(`Detach removes the image at position n as listed by show. With --clip it
removes the recording at position n and deletes its file.`),
		Example: `
diary detach 3f2a 2
diary detach 3f2a 1 --clip
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
			c := editor.Compose{
				Service: j.Service,
				ID:      id,
				ShowID:  true,
				JSON:    output.JSON,
			}
			if clip {
				c.RemoveClips = []int{at}
			} else {
				c.RemoveImages = []int{at}
			}
			return output.HandleError(c.Do(ctx))
		},
	}

	cmd.Flags().BoolVar(&clip, "clip", false, "Remove a recording instead of an image.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
