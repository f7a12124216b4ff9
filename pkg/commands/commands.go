package commands

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/store"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "diary",
		Short: base.Wrap80("A private journal on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if cfg, err := store.LoadConfig(); err == nil {
				level = cfg.LogLevel()
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.New(color.Error, level)))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUnlock(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addBookmark(topLevel)
	addShowTitle(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addStats(topLevel)
	addAttach(topLevel)
	addDetach(topLevel)
	addRecord(topLevel)
	addPlay(topLevel)
	addWaveform(topLevel)
	addPrint(topLevel)
	addRemind(topLevel)
	addPassphrase(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)

	for _, cmd := range topLevel.Commands() {
		if strings.Contains(cmd.Use, "<id>") {
			cmd.ValidArgsFunction = completeID
		}
	}
}
