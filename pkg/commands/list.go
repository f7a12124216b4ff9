package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/list"
	"tableflip.dev/diary/pkg/timeutil"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries by Today, Yesterday and month",
		Example: `
diary list
diary list --search lake --flat --asc
diary list --bookmarked
diary list --last 1w
diary list --follow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			var window timeutil.Window
			if lo.Last != "" {
				var err error
				if window, err = timeutil.ParseWindow(lo.Last); err != nil {
					return output.HandleError(err)
				}
			}

			j, err := unlockedJournal(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Service: j.Service,
				Query:   lo.Query(),
				Flat:    lo.Flat,
				Window:  window,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
				Follow:  lo.Follow,
			}
			return output.HandleError(l.Do(ctx))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
