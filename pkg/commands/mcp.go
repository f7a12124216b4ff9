package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server on stdio that exposes journal entries, search, stats
and edits through the Model Context Protocol. If the journal has a passphrase
it is asked for on the terminal before the server starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := unlockedJournal(ctx)
			if err != nil {
				return err
			}

			runner := mcp.Runner{
				App:     j.Service,
				Name:    "diary",
				Version: "dev",
			}
			return runner.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
