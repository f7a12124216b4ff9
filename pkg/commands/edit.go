package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/editor"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, body or date of an entry",
		Long: base.Wrap80(`Edit changes only the fields that are given. The id may be shortened to
any unique prefix.`),
		Example: `
diary edit 3f2a --title "Lake day"
diary edit 3f2a --on 2026-10-12
diary edit 3f2a --body - < notes.md
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
			on, err := eo.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}

			c := editor.Compose{
				Service: j.Service,
				ID:      id,
				Date:    on,
				Images:  eo.Images,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
			}
			if cmd.Flags().Changed("title") {
				c.Title = &eo.Title
			}
			if cmd.Flags().Changed("body") {
				body, err := readBody(eo.Description, nil)
				if err != nil {
					return output.HandleError(err)
				}
				c.Description = &body
			}
			return output.HandleError(c.Do(ctx))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddImageArgs(cmd, eo)
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
