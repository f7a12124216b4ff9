package printers

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/entry"
)

// PrintService hands a rendered entry to the system.
type PrintService interface {
	Print(ctx context.Context, e *entry.Entry) <-chan async.Result[string]
}

// DefaultPrintCommand sends the page to the default CUPS printer.
const DefaultPrintCommand = "lp {path}"

// ExecPrintService renders the page to a temporary file and runs Command on
// it; {path} is substituted. The result is the command's output.
type ExecPrintService struct {
	Command string
}

func (p *ExecPrintService) Print(ctx context.Context, e *entry.Entry) <-chan async.Result[string] {
	return async.Go(ctx, func(ctx context.Context) (string, error) {
		f, err := os.CreateTemp("", "diary-*.html")
		if err != nil {
			return "", fmt.Errorf("printers: create page: %w", err)
		}
		defer os.Remove(f.Name())
		if err := HTML(f, e); err != nil {
			_ = f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("printers: write page: %w", err)
		}

		cmd := p.Command
		if strings.TrimSpace(cmd) == "" {
			cmd = DefaultPrintCommand
		}
		if !strings.Contains(cmd, "{path}") {
			cmd += " {path}"
		}
		args := strings.Fields(strings.ReplaceAll(cmd, "{path}", f.Name()))
		out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput()
		if err != nil {
			return "", fmt.Errorf("printers: %s: %v: %s", args[0], err, bytes.TrimSpace(out))
		}
		return strings.TrimSpace(string(out)), nil
	})
}

// FilePrintService writes the page to Path instead of printing it.
type FilePrintService struct {
	Path string
}

func (p *FilePrintService) Print(ctx context.Context, e *entry.Entry) <-chan async.Result[string] {
	return async.Go(ctx, func(context.Context) (string, error) {
		if dir := filepath.Dir(p.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("printers: %w", err)
			}
		}
		var buf bytes.Buffer
		if err := HTML(&buf, e); err != nil {
			return "", err
		}
		if err := os.WriteFile(p.Path, buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("printers: write %s: %w", p.Path, err)
		}
		return p.Path, nil
	})
}
