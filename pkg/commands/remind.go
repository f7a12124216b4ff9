package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/reminder"
	"tableflip.dev/diary/pkg/runner/remind"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/timeutil"
)

func addRemind(topLevel *cobra.Command) {
	var (
		run           bool
		notifications string
	)

	cmd := &cobra.Command{
		Use:   "remind [HH:MM]",
		Short: "Show or set the daily reminder",
		Long: base.Wrap80(`Remind shows the time of the daily journaling reminder, or sets it. The
first time a reminder is set diary asks whether it may notify you. With --run
diary stays in the foreground and rings the terminal bell at that time each
day.`),
		Example: `
diary remind
diary remind 21:30
diary remind 8pm --run
diary remind --notifications=on
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			r := remind.Remind{Run: run}
			if len(args) == 1 {
				at, err := timeutil.ParseTimeOfDay(args[0])
				if err != nil {
					return output.HandleError(err)
				}
				r.Set = &at
			}
			if notifications != "" {
				p, err := parseOnOff(notifications)
				if err != nil {
					return output.HandleError(err)
				}
				r.Permission = &p
			}

			p, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			notifier := &reminder.TerminalNotifier{Settings: p, Out: color.Output, In: os.Stdin}
			r.Reminder = &reminder.Reminder{
				Settings:  p,
				Scheduler: reminder.NewScheduler(notifier, logging.FromContext(ctx)),
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	cmd.Flags().BoolVar(&run, "run", false, "Stay running and deliver the reminder every day.")
	cmd.Flags().StringVar(&notifications, "notifications", "", "Allow (on) or block (off) reminder notifications.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func parseOnOff(v string) (reminder.Permission, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "yes", "true", "allow":
		return reminder.Granted, nil
	case "off", "no", "false", "deny":
		return reminder.Denied, nil
	}
	return reminder.Undetermined, fmt.Errorf("invalid --notifications %q, expected on or off", v)
}
