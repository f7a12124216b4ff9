package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/timeutil"
)

// Scheduler runs recurring notifications, one job per key.
type Scheduler struct {
	notifier Notifier
	log      logging.Logger

	mu   sync.Mutex
	cron *cron.Cron
	jobs map[string]cron.EntryID
}

// NewScheduler creates a stopped scheduler in the local time zone.
func NewScheduler(n Notifier, log logging.Logger) *Scheduler {
	if log == nil {
		log = logging.FromContext(context.Background())
	}
	return &Scheduler{
		notifier: n,
		log:      log,
		cron:     cron.New(cron.WithLocation(time.Local)),
		jobs:     make(map[string]cron.EntryID),
	}
}

// ScheduleRecurring fires a daily notification at t under key, replacing any
// earlier schedule for the same key. An undetermined permission is requested
// first; a denied one fails with ErrPermissionDenied.
func (s *Scheduler) ScheduleRecurring(ctx context.Context, key string, t timeutil.TimeOfDay, title, body string) error {
	switch s.notifier.Authorization(ctx) {
	case Denied:
		return ErrPermissionDenied
	case Undetermined:
		res := async.Await(ctx, s.notifier.RequestAuthorization(ctx))
		if res.Err != nil {
			return fmt.Errorf("reminder: request permission: %w", res.Err)
		}
		if res.Value != Granted {
			return ErrPermissionDenied
		}
	}

	spec := fmt.Sprintf("%d %d * * *", t.Minute, t.Hour)

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.cron.AddFunc(spec, func() {
		if err := s.notifier.Notify(context.Background(), title, body); err != nil {
			s.log.Warn(context.Background(), "notification failed", "key", key, "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("reminder: schedule %s: %w", spec, err)
	}
	if old, ok := s.jobs[key]; ok {
		s.cron.Remove(old)
	}
	s.jobs[key] = id
	s.log.Debug(ctx, "reminder scheduled", "key", key, "at", t.String())
	return nil
}

// Cancel removes the schedule for key.
func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.jobs[key]; ok {
		s.cron.Remove(id)
		delete(s.jobs, key)
	}
}

// Scheduled reports the number of active schedules.
func (s *Scheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Next is the next fire time for key, zero when unscheduled or stopped.
func (s *Scheduler) Next(key string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.jobs[key]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// Run starts firing notifications until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
}
