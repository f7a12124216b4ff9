package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/runner/list"
)

func addStats(topLevel *cobra.Command) {
	var calendar bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Longest streak, words written and days journalled",
		Example: `
diary stats
diary stats --calendar
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			j, err := unlockedJournal(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			s := list.Stats{
				Service:  j.Service,
				Calendar: calendar,
				JSON:     output.JSON,
			}
			return output.HandleError(s.Do(ctx))
		},
	}

	cmd.Flags().BoolVarP(&calendar, "calendar", "c", false, "Also show which days of this year have entries.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
