package auth

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

type memSettings map[string]string

func (m memSettings) Setting(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memSettings) SetSetting(key, value string) error {
	m[key] = value
	return nil
}

func stubPasswords(t *testing.T, answers ...string) *int {
	t.Helper()
	orig := readPassword
	calls := 0
	readPassword = func(int) ([]byte, error) {
		if calls >= len(answers) {
			return nil, errors.New("no more input")
		}
		a := answers[calls]
		calls++
		return []byte(a), nil
	}
	t.Cleanup(func() { readPassword = orig })
	return &calls
}

func TestEvaluateWithoutPassphrase(t *testing.T) {
	calls := stubPasswords(t)
	p := &Passphrase{Settings: memSettings{}, Out: &bytes.Buffer{}}
	lock := NewLock(p)
	if err := lock.Unlock(context.Background(), "Unlock your journal"); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if *calls != 0 {
		t.Fatalf("prompted %d times, want 0", *calls)
	}
}

func TestUnlockRetryAfterFailure(t *testing.T) {
	s := memSettings{}
	if err := SetPassphrase(s, []byte("hunter2")); err != nil {
		t.Fatalf("SetPassphrase() error = %v", err)
	}
	calls := stubPasswords(t, "wrong", "hunter2")
	var out bytes.Buffer
	lock := NewLock(&Passphrase{Settings: s, Out: &out})
	ctx := context.Background()

	if err := lock.Unlock(ctx, "Unlock your journal"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("Unlock() error = %v, want ErrAuthenticationFailed", err)
	}
	if lock.Unlocked() {
		t.Fatalf("lock opened after a failed attempt")
	}
	if err := lock.Unlock(ctx, "Unlock your journal"); err != nil {
		t.Fatalf("Unlock() retry error = %v", err)
	}
	if err := lock.Unlock(ctx, "Unlock your journal"); err != nil {
		t.Fatalf("Unlock() when unlocked error = %v", err)
	}
	if *calls != 2 {
		t.Fatalf("prompted %d times, want 2", *calls)
	}
	if !bytes.Contains(out.Bytes(), []byte("Unlock your journal")) {
		t.Fatalf("reason not shown: %q", out.String())
	}
}

func TestReadNew(t *testing.T) {
	stubPasswords(t, "a", "b")
	if _, err := ReadNew(&bytes.Buffer{}); err == nil {
		t.Fatalf("ReadNew() expected mismatch error")
	}
	stubPasswords(t, "same", "same")
	got, err := ReadNew(&bytes.Buffer{})
	if err != nil || string(got) != "same" {
		t.Fatalf("ReadNew() = %q, %v", got, err)
	}
}

func TestClearPassphrase(t *testing.T) {
	s := memSettings{}
	if err := SetPassphrase(s, nil); !errors.Is(err, ErrEmptyPassphrase) {
		t.Fatalf("SetPassphrase(nil) error = %v", err)
	}
	_ = SetPassphrase(s, []byte("x"))
	p := &Passphrase{Settings: s}
	if !p.Enabled() {
		t.Fatalf("Enabled() = false after SetPassphrase")
	}
	_ = ClearPassphrase(s)
	if p.Enabled() {
		t.Fatalf("Enabled() = true after ClearPassphrase")
	}
}
