package reminder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/store"
)

// Permission is the notification authorization status.
type Permission int

const (
	Undetermined Permission = iota
	Granted
	Denied
)

// PermissionKey stores the answer given to the permission prompt.
const PermissionKey = "notificationPermission"

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "undetermined"
	}
}

// ParsePermission is the inverse of String.
func ParsePermission(v string) Permission {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "granted":
		return Granted
	case "denied":
		return Denied
	default:
		return Undetermined
	}
}

// Notifier is the OS notification service.
type Notifier interface {
	Authorization(ctx context.Context) Permission
	RequestAuthorization(ctx context.Context) <-chan async.Result[Permission]
	Notify(ctx context.Context, title, body string) error
}

// TerminalNotifier rings the terminal bell and prints the notification. The
// permission answer is kept in settings.
type TerminalNotifier struct {
	Settings store.Settings
	Out      io.Writer
	// In answers the permission prompt. Nil means nobody can answer and the
	// permission stays undetermined.
	In io.Reader
}

func (n *TerminalNotifier) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

func (n *TerminalNotifier) Authorization(context.Context) Permission {
	v, _ := n.Settings.Setting(PermissionKey)
	return ParsePermission(v)
}

// RequestAuthorization asks once on the terminal and remembers the answer.
func (n *TerminalNotifier) RequestAuthorization(ctx context.Context) <-chan async.Result[Permission] {
	if p := n.Authorization(ctx); p != Undetermined || n.In == nil {
		return async.Done(p, nil)
	}
	return async.Go(ctx, func(context.Context) (Permission, error) {
		_, _ = fmt.Fprint(n.out(), "Allow diary to send daily reminders? [y/N] ")
		line, err := bufio.NewReader(n.In).ReadString('\n')
		if err != nil && line == "" {
			return Undetermined, nil
		}
		p := Denied
		if answer := strings.ToLower(strings.TrimSpace(line)); answer == "y" || answer == "yes" {
			p = Granted
		}
		if err := n.Settings.SetSetting(PermissionKey, p.String()); err != nil {
			return p, err
		}
		return p, nil
	})
}

func (n *TerminalNotifier) Notify(_ context.Context, title, body string) error {
	bold := color.New(color.Bold)
	_, err := fmt.Fprintf(n.out(), "\a%s\n%s\n", bold.Sprint(title), body)
	return err
}
