package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/printers"
)

func addPrint(topLevel *cobra.Command) {
	var out string

	cmd := &cobra.Command{
		Use:   "print <id>",
		Short: "Print an entry, or save it as an HTML page",
		Long: base.Wrap80(`Print renders the entry as a page with its images, title, body and date and
hands it to the configured print command. With --out the page is written to a
file instead.`),
		Example: `
diary print 3f2a
diary print 3f2a --out lake.html
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

			var ps printers.PrintService = &printers.ExecPrintService{Command: j.Config.PrintCommand()}
			if out != "" {
				ps = &printers.FilePrintService{Path: out}
			}
			res, err := j.Service.Print(ctx, id, ps)
			if err != nil {
				return output.HandleError(err)
			}
			if res != "" && !output.JSON {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), res)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the HTML page to this file instead of printing.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
