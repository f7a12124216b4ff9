// Package auth is the lock step in front of the journal.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/store"
)

// HashKey stores the bcrypt hash of the passphrase. Empty or missing means
// the journal is not locked.
const HashKey = "passphraseHash"

// ErrAuthenticationFailed is shown inline; the user may try again.
var ErrAuthenticationFailed = errors.New("authentication failed, please try again")

// ErrEmptyPassphrase rejects a blank new passphrase.
var ErrEmptyPassphrase = errors.New("auth: passphrase is empty")

// Authenticator evaluates the device owner.
type Authenticator interface {
	Evaluate(ctx context.Context, reason string) <-chan async.Result[struct{}]
}

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Passphrase prompts on the terminal and compares against the stored hash.
type Passphrase struct {
	Settings store.Settings
	Out      io.Writer
}

func (p *Passphrase) out() io.Writer {
	if p.Out == nil {
		return color.Error
	}
	return p.Out
}

// Enabled reports whether a passphrase has been set.
func (p *Passphrase) Enabled() bool {
	h, ok := p.Settings.Setting(HashKey)
	return ok && h != ""
}

func (p *Passphrase) Evaluate(ctx context.Context, reason string) <-chan async.Result[struct{}] {
	if !p.Enabled() {
		return async.Done(struct{}{}, nil)
	}
	return async.Go(ctx, func(context.Context) (struct{}, error) {
		hash, _ := p.Settings.Setting(HashKey)
		if _, err := fmt.Fprintf(p.out(), "%s\nPassphrase: ", reason); err != nil {
			return struct{}{}, err
		}
		pw, err := readPassword(int(os.Stdin.Fd()))
		_, _ = fmt.Fprintln(p.out())
		if err != nil {
			return struct{}{}, fmt.Errorf("auth: read passphrase: %w", err)
		}
		defer wipe(pw)
		if err := bcrypt.CompareHashAndPassword([]byte(hash), pw); err != nil {
			return struct{}{}, ErrAuthenticationFailed
		}
		return struct{}{}, nil
	})
}

// SetPassphrase stores the hash of pass, replacing any previous one.
func SetPassphrase(s store.Settings, pass []byte) error {
	if len(pass) == 0 {
		return ErrEmptyPassphrase
	}
	hash, err := bcrypt.GenerateFromPassword(pass, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash passphrase: %w", err)
	}
	return s.SetSetting(HashKey, string(hash))
}

// ClearPassphrase removes the lock.
func ClearPassphrase(s store.Settings) error {
	return s.SetSetting(HashKey, "")
}

// ReadNew prompts twice for a new passphrase.
func ReadNew(w io.Writer) ([]byte, error) {
	_, _ = fmt.Fprint(w, "New passphrase: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("auth: read passphrase: %w", err)
	}
	_, _ = fmt.Fprint(w, "Repeat passphrase: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("auth: read passphrase: %w", err)
	}
	defer wipe(second)
	if string(first) != string(second) {
		wipe(first)
		return nil, errors.New("auth: passphrases do not match")
	}
	return first, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Lock gates the journal. Once unlocked it stays unlocked for the process.
type Lock struct {
	auth Authenticator

	mu       sync.Mutex
	unlocked bool
}

func NewLock(a Authenticator) *Lock {
	return &Lock{auth: a}
}

// Unlocked reports the current state.
func (l *Lock) Unlocked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unlocked
}

// Unlock runs the authenticator unless already unlocked. A failed attempt
// leaves the lock closed and may be retried.
func (l *Lock) Unlock(ctx context.Context, reason string) error {
	if l.Unlocked() {
		return nil
	}
	res := async.Await(ctx, l.auth.Evaluate(ctx, reason))
	if res.Err != nil {
		return res.Err
	}
	l.mu.Lock()
	l.unlocked = true
	l.mu.Unlock()
	return nil
}
