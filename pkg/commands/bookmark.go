package commands

import (
	"context"
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

type toggleFunc func(ctx context.Context, j *journal, id string) (*entry.Entry, error)

func addBookmark(topLevel *cobra.Command) {
	addToggle(topLevel, "bookmark <id>", "Bookmark an entry, or remove its bookmark",
		func(ctx context.Context, j *journal, id string) (*entry.Entry, error) {
			return j.Service.ToggleBookmark(ctx, id)
		})
}

func addShowTitle(topLevel *cobra.Command) {
	addToggle(topLevel, "show-title <id>", "Show or hide the title of an entry",
		func(ctx context.Context, j *journal, id string) (*entry.Entry, error) {
			return j.Service.ToggleShowTitle(ctx, id)
		})
}

func addToggle(topLevel *cobra.Command, use, short string, toggle toggleFunc) {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  idArg(1),
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
			e, err := toggle(ctx, j, id)
			if err != nil {
				return output.HandleError(err)
			}
			if output.JSON {
				return json.NewEncoder(color.Output).Encode(e)
			}
			pp := printers.PrettyPrint{ShowID: true}
			pp.Collection(e)
			return nil
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
