package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/auth"
	"tableflip.dev/diary/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(diary completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(diary completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completeID offers entry ids for the first argument of commands that take
// one. Nothing is offered while the journal is locked.
func completeID(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return idCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func idCompletions(toComplete string) []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	if (&auth.Passphrase{Settings: p}).Enabled() {
		return nil
	}
	var ids []string
	for _, e := range p.ListAll(context.Background()) {
		if strings.HasPrefix(e.ID, toComplete) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
