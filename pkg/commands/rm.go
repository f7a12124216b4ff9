package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an entry and its recordings",
		Example: `
diary rm 3f2a
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
			if err := j.Service.Delete(ctx, id); err != nil {
				return output.HandleError(err)
			}
			if !output.JSON {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
			}
			return nil
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
