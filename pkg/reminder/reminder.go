// Package reminder keeps the daily journaling reminder: the persisted time of
// day and the recurring notification it drives.
package reminder

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/timeutil"
)

const (
	// SettingKey holds the reminder time as HH:MM.
	SettingKey = "reminderTime"
	// NotificationKey identifies the recurring notification so that
	// rescheduling replaces it.
	NotificationKey = "journal.daily-reminder"

	Title = "Time to journal"
	Body  = "Take a minute to write about your day."
)

// DefaultTime is used until the user picks a time.
var DefaultTime = timeutil.TimeOfDay{Hour: 20, Minute: 0}

// ErrPermissionDenied means notifications are not allowed. The user has to
// change that in settings.
var ErrPermissionDenied = errors.New("reminder: notifications are not allowed")

// Load reads the reminder time, falling back to DefaultTime when it is
// missing or unreadable.
func Load(s store.Settings) timeutil.TimeOfDay {
	v, ok := s.Setting(SettingKey)
	if !ok {
		return DefaultTime
	}
	t, err := timeutil.ParseTimeOfDay(v)
	if err != nil {
		return DefaultTime
	}
	return t
}

// Reminder ties the persisted setting to the scheduler.
type Reminder struct {
	Settings  store.Settings
	Scheduler *Scheduler
}

// Time is the current reminder time.
func (r *Reminder) Time() timeutil.TimeOfDay {
	return Load(r.Settings)
}

// Arm schedules the notification at the stored time.
func (r *Reminder) Arm(ctx context.Context) error {
	return r.Scheduler.ScheduleRecurring(ctx, NotificationKey, r.Time(), Title, Body)
}

// Set reschedules the notification at t and persists t. When either step
// fails the previous schedule and setting are kept.
func (r *Reminder) Set(ctx context.Context, t timeutil.TimeOfDay) error {
	previous := r.Time()
	if err := r.Scheduler.ScheduleRecurring(ctx, NotificationKey, t, Title, Body); err != nil {
		return err
	}
	if err := r.Settings.SetSetting(SettingKey, t.String()); err != nil {
		if rerr := r.Scheduler.ScheduleRecurring(ctx, NotificationKey, previous, Title, Body); rerr != nil {
			logging.FromContext(ctx).Error(ctx, "restore reminder failed", "err", rerr)
		}
		return fmt.Errorf("reminder: save time: %w", err)
	}
	return nil
}
