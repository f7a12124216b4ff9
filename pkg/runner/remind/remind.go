// Package remind provides the runner behind the daily reminder command.
package remind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/reminder"
	"tableflip.dev/diary/pkg/timeutil"
)

// Remind shows or changes the reminder time. With Run it stays in the
// foreground delivering the reminder until ctx ends.
type Remind struct {
	Reminder *reminder.Reminder
	Set      *timeutil.TimeOfDay
	// Permission answers the notification permission up front.
	Permission *reminder.Permission
	Run        bool
	Out        io.Writer
}

func (n *Remind) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Permission != nil {
		if err := n.Reminder.Settings.SetSetting(reminder.PermissionKey, n.Permission.String()); err != nil {
			return err
		}
	}

	if n.Set != nil {
		if err := n.Reminder.Set(ctx, *n.Set); err != nil {
			if errors.Is(err, reminder.ErrPermissionDenied) {
				alert := color.New(color.FgRed, color.Bold)
				_, _ = alert.Fprintln(out, "Notifications are turned off.")
				_, _ = fmt.Fprintln(out, "Allow them with `diary remind --notifications=on` and try again.")
			}
			return err
		}
	}

	at := n.Reminder.Time()
	if !n.Run {
		_, _ = fmt.Fprintf(out, "Daily reminder at %s\n", at)
		return nil
	}

	if n.Set == nil {
		if err := n.Reminder.Arm(ctx); err != nil {
			return err
		}
	}
	_, _ = color.New(color.Faint).Fprintf(out, "Reminding daily at %s, next %s. Ctrl-C to stop.\n",
		at, at.Next(time.Now()).Format("Mon 2 Jan 15:04"))
	n.Reminder.Scheduler.Run(ctx)
	return nil
}
