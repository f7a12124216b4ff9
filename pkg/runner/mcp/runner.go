package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/store"
)

// Runner serves the journal over MCP on stdio.
type Runner struct {
	App     *app.Service
	Name    string
	Version string
}

// Do executes the runner. It blocks until stdin closes.
func (r Runner) Do(ctx context.Context) error {
	if r.App == nil {
		return errors.New("mcp runner requires a journal")
	}
	name := r.Name
	if name == "" {
		name = "diary"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := r.newServer(name, version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.reloadOnChange(ctx)

	return server.ServeStdio(srv)
}

func (r Runner) newServer(name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and write journal entries, bookmarks and stats via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.App)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// reloadOnChange keeps the in-memory journal in step with writes made by
// other processes, such as the CLI, while the server runs.
func (r Runner) reloadOnChange(ctx context.Context) {
	log := logging.FromContext(ctx)
	events, err := r.App.Watch(ctx)
	if err != nil {
		log.Warn(ctx, "watch journal", "error", err)
		return
	}
	go func() {
		for ev := range events {
			if ev.Type == store.EventSettingsChanged {
				continue
			}
			if err := r.App.Load(ctx); err != nil {
				log.Warn(ctx, "reload journal", "error", err)
			}
		}
	}()
}
