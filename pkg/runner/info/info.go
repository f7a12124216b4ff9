package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/auth"
	"tableflip.dev/diary/pkg/reminder"
	"tableflip.dev/diary/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	file := store.ConfigFile(n.Config)
	if file == "" {
		file = "none"
	}

	var notifier reminder.Notifier = &reminder.TerminalNotifier{Settings: n.Persistence}
	lock := &auth.Passphrase{Settings: n.Persistence}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config file:", file)
	tbl.AddRow("Journal path:", n.Config.BasePath())
	tbl.AddRow("Audio path:", n.Config.AudioDir())
	tbl.AddRow("Record command:", n.Config.RecordCommand())
	tbl.AddRow("Play command:", n.Config.PlayCommand())
	tbl.AddRow("Print command:", n.Config.PrintCommand())
	tbl.AddRow("Log level:", n.Config.LogLevel())
	tbl.AddRow("Entries:", len(n.Persistence.ListAll(ctx)))
	tbl.AddRow("Reminder:", reminder.Load(n.Persistence).String())
	tbl.AddRow("Notifications:", notifier.Authorization(ctx).String())
	tbl.AddRow("Passphrase:", onOff(lock.Enabled()))
	_, _ = fmt.Fprintln(out, tbl)

	return nil
}

func onOff(b bool) string {
	if b {
		return "set"
	}
	return "not set"
}
