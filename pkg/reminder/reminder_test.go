package reminder

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/timeutil"
)

type memSettings struct {
	values  map[string]string
	failSet error
}

func newMemSettings() *memSettings {
	return &memSettings{values: map[string]string{}}
}

func (m *memSettings) Setting(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memSettings) SetSetting(key, value string) error {
	if m.failSet != nil {
		return m.failSet
	}
	m.values[key] = value
	return nil
}

type fakeNotifier struct {
	perm     Permission
	answer   Permission
	requests int
	sent     []string
}

func (f *fakeNotifier) Authorization(context.Context) Permission { return f.perm }

func (f *fakeNotifier) RequestAuthorization(context.Context) <-chan async.Result[Permission] {
	f.requests++
	f.perm = f.answer
	return async.Done(f.answer, nil)
}

func (f *fakeNotifier) Notify(_ context.Context, title, _ string) error {
	f.sent = append(f.sent, title)
	return nil
}

func TestLoadDefaults(t *testing.T) {
	s := newMemSettings()
	if got := Load(s); got != DefaultTime {
		t.Fatalf("Load() = %v, want %v", got, DefaultTime)
	}
	s.values[SettingKey] = "not a time"
	if got := Load(s); got != DefaultTime {
		t.Fatalf("Load(garbage) = %v, want %v", got, DefaultTime)
	}
	s.values[SettingKey] = "07:30"
	if got := Load(s); got != (timeutil.TimeOfDay{Hour: 7, Minute: 30}) {
		t.Fatalf("Load() = %v, want 07:30", got)
	}
}

func TestSetReschedulesOnce(t *testing.T) {
	ctx := context.Background()
	n := &fakeNotifier{perm: Granted}
	r := &Reminder{Settings: newMemSettings(), Scheduler: NewScheduler(n, nil)}

	if err := r.Arm(ctx); err != nil {
		t.Fatalf("Arm() error = %v", err)
	}
	if err := r.Set(ctx, timeutil.TimeOfDay{Hour: 21, Minute: 15}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := r.Scheduler.Scheduled(); got != 1 {
		t.Fatalf("Scheduled() = %d, want 1", got)
	}
	if got := r.Time().String(); got != "21:15" {
		t.Fatalf("Time() = %s, want 21:15", got)
	}
}

func TestSetDenied(t *testing.T) {
	ctx := context.Background()
	n := &fakeNotifier{perm: Denied}
	s := newMemSettings()
	r := &Reminder{Settings: s, Scheduler: NewScheduler(n, nil)}

	err := r.Set(ctx, timeutil.TimeOfDay{Hour: 6})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Set() error = %v, want ErrPermissionDenied", err)
	}
	if _, ok := s.values[SettingKey]; ok {
		t.Fatalf("setting persisted despite denied permission")
	}
}

func TestScheduleRequestsPermission(t *testing.T) {
	ctx := context.Background()
	n := &fakeNotifier{perm: Undetermined, answer: Denied}
	sch := NewScheduler(n, nil)

	err := sch.ScheduleRecurring(ctx, NotificationKey, DefaultTime, Title, Body)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}
	if n.requests != 1 {
		t.Fatalf("requests = %d, want 1", n.requests)
	}

	n.perm, n.answer = Undetermined, Granted
	if err := sch.ScheduleRecurring(ctx, NotificationKey, DefaultTime, Title, Body); err != nil {
		t.Fatalf("error = %v", err)
	}
	sch.Cancel(NotificationKey)
	if got := sch.Scheduled(); got != 0 {
		t.Fatalf("Scheduled() after cancel = %d", got)
	}
}

func TestSetKeepsOldTimeWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	s := newMemSettings()
	s.values[SettingKey] = "08:00"
	r := &Reminder{Settings: s, Scheduler: NewScheduler(&fakeNotifier{perm: Granted}, nil)}

	s.failSet = errors.New("disk full")
	if err := r.Set(ctx, timeutil.TimeOfDay{Hour: 22}); err == nil {
		t.Fatalf("Set() expected error")
	}
	if got := r.Time().String(); got != "08:00" {
		t.Fatalf("Time() = %s, want 08:00", got)
	}
}

func TestTerminalNotifierPrompt(t *testing.T) {
	ctx := context.Background()
	s := newMemSettings()
	var out bytes.Buffer
	n := &TerminalNotifier{Settings: s, Out: &out, In: strings.NewReader("yes\n")}

	res := async.Await(ctx, n.RequestAuthorization(ctx))
	if res.Err != nil || res.Value != Granted {
		t.Fatalf("RequestAuthorization() = %+v", res)
	}
	if got := n.Authorization(ctx); got != Granted {
		t.Fatalf("Authorization() = %v, want granted", got)
	}

	out.Reset()
	if err := n.Notify(ctx, Title, Body); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if !strings.Contains(out.String(), Body) {
		t.Fatalf("Notify() output = %q", out.String())
	}
}

func TestTerminalNotifierWithoutInput(t *testing.T) {
	ctx := context.Background()
	n := &TerminalNotifier{Settings: newMemSettings(), Out: &bytes.Buffer{}}
	res := async.Await(ctx, n.RequestAuthorization(ctx))
	if res.Value != Undetermined {
		t.Fatalf("RequestAuthorization() = %v, want undetermined", res.Value)
	}
}
