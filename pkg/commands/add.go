package commands

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/editor"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	ido := &options.IDOptions{}
	var record bool

	cmd := &cobra.Command{
		Use:   "add [body...]",
		Short: "Write a new entry",
		Example: `
diary add --title "Sunday" went to the lake
diary add --on yesterday --image lake.jpg --body "cold water"
echo "long day" | diary add --body -
diary add --title "Voice memo" --record
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			j, err := unlockedJournal(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			on, err := eo.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			body, err := readBody(eo.Description, args)
			if err != nil {
				return output.HandleError(err)
			}

			c := editor.Compose{
				Service: j.Service,
				Date:    on,
				Images:  eo.Images,
				Record:  record,
				ShowID:  ido.ShowID,
				JSON:    output.JSON,
			}
			if eo.Title != "" {
				c.Title = &eo.Title
			}
			if body != "" {
				c.Description = &body
			}
			if record {
				c.WaitStop = editor.StopOnEnter(os.Stdin, cmd.ErrOrStderr())
			}
			return output.HandleError(c.Do(ctx))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddImageArgs(cmd, eo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVarP(&record, "record", "r", false, "Record an audio clip before saving.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

// readBody joins positional words, or reads stdin when the body flag is "-".
func readBody(flag string, args []string) (string, error) {
	if flag == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(b), "\n"), nil
	}
	if flag != "" {
		return flag, nil
	}
	return strings.Join(args, " "), nil
}
