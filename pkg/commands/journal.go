package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/auth"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/media"
	"tableflip.dev/diary/pkg/store"
)

const unlockReason = "Unlock your journal"

const unlockAttempts = 3

// journal is what most commands need: config, storage and the service.
type journal struct {
	Config      store.Config
	Persistence store.Persistence
	Service     *app.Service
}

// openJournal loads config and storage without asking for the passphrase.
func openJournal(ctx context.Context) (*journal, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	return &journal{
		Config:      cfg,
		Persistence: p,
		Service: &app.Service{
			Persistence: p,
			Media: media.Options{
				Dir:      cfg.AudioDir(),
				Recorder: &media.ExecRecorder{Command: cfg.RecordCommand()},
				Player:   &media.ExecPlayer{Command: cfg.PlayCommand()},
				Logger:   logging.FromContext(ctx),
			},
		},
	}, nil
}

// unlockedJournal opens the journal and asks for the passphrase when one is
// set.
func unlockedJournal(ctx context.Context) (*journal, error) {
	j, err := openJournal(ctx)
	if err != nil {
		return nil, err
	}
	if err := unlock(ctx, j.Persistence); err != nil {
		return nil, err
	}
	return j, nil
}

func unlock(ctx context.Context, s store.Settings) error {
	lock := auth.NewLock(&auth.Passphrase{Settings: s})
	var err error
	for i := 0; i < unlockAttempts; i++ {
		if err = lock.Unlock(ctx, unlockReason); err == nil {
			return nil
		}
		if !errors.Is(err, auth.ErrAuthenticationFailed) {
			return err
		}
		_, _ = color.New(color.FgRed).Fprintln(color.Error, err.Error())
	}
	return err
}

// resolveID turns an id prefix into a full entry id.
func (j *journal) resolveID(ctx context.Context, prefix string) (string, error) {
	return j.Service.Resolve(ctx, prefix)
}

// idArg checks for exactly n args, the first being an entry id.
func idArg(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires an entry id")
		}
		return cobra.ExactArgs(n)(cmd, args)
	}
}

// position reads a one-based position as shown by `diary show`.
func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q, expected 1 or more", arg)
	}
	return n - 1, nil
}
