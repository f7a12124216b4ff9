package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Where the journal is stored and how it is configured.",
		Example: `
diary info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			s := info.Info{
				Config:      j.Config,
				Persistence: j.Persistence,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
