package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func addUnlock(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Check the journal passphrase",
		Example: `
diary unlock
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if _, err := unlockedJournal(cmd.Context()); err != nil {
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Unlocked.")
			return nil
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
