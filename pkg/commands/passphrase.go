package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/auth"
)

func addPassphrase(topLevel *cobra.Command) {
	var remove bool

	cmd := &cobra.Command{
		Use:   "passphrase",
		Short: "Lock the journal behind a passphrase",
		Long: base.Wrap80(`Passphrase sets or changes the passphrase asked for before the journal is
read or written. The current passphrase is asked for first. With --clear the
lock is removed.`),
		Example: `
diary passphrase
diary passphrase --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			j, err := unlockedJournal(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			if remove {
				if err := auth.ClearPassphrase(j.Persistence); err != nil {
					return output.HandleError(err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Passphrase removed.")
				return nil
			}
			pass, err := auth.ReadNew(color.Error)
			if err != nil {
				return output.HandleError(err)
			}
			err = auth.SetPassphrase(j.Persistence, pass)
			for i := range pass {
				pass[i] = 0
			}
			if err != nil {
				return output.HandleError(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Passphrase set.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "clear", false, "Remove the passphrase.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
