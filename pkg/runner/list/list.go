// Package list provides runners that read the journal: listings, a single
// entry, and stats.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/journal/viewmodel"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/timeutil"
)

// List prints the journal grouped into sections, or flat with --flat.
type List struct {
	Service *app.Service
	Query   viewmodel.Query
	Flat    bool
	// Window limits the listing to entries dated within it when non-zero.
	Window timeutil.Window
	ShowID bool
	JSON   bool
	Follow bool
	Out    io.Writer
}

func (n *List) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no journal")
	}
	if err := n.render(ctx); err != nil {
		return err
	}
	if !n.Follow {
		return nil
	}

	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	log := logging.FromContext(ctx)
	faint := color.New(color.Faint)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == store.EventSettingsChanged {
				continue
			}
			log.Debug(ctx, "journal changed", "id", ev.ID)
			if err := n.Service.Load(ctx); err != nil {
				return err
			}
			_, _ = faint.Fprintf(n.out(), "-- updated %s --\n\n", time.Now().Format("15:04:05"))
			if err := n.render(ctx); err != nil {
				return err
			}
		}
	}
}

func (n *List) render(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.out()}

	switch {
	case !n.Window.IsZero():
		until := time.Now()
		res, err := n.Service.Report(ctx, n.Window.Since(until), until, n.Query)
		if err != nil {
			return err
		}
		if n.JSON {
			return n.json(res)
		}
		pp.Title(n.Window.Label())
		pp.NewLine()
		pp.Sections(res.Sections)
		pp.Stats(res.Stats)
	case n.Flat:
		entries, err := n.Service.Filter(ctx, n.Query)
		if err != nil {
			return err
		}
		if n.JSON {
			return n.json(entries)
		}
		pp.Collection(entries...)
	default:
		sections, err := n.Service.Sections(ctx, n.Query)
		if err != nil {
			return err
		}
		if n.JSON {
			return n.json(sections)
		}
		pp.Sections(sections)
	}
	return nil
}

func (n *List) json(v any) error {
	enc := json.NewEncoder(n.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Show prints one entry in full.
type Show struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	e, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		enc := json.NewEncoder(outOr(n.Out))
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Entry(e)
	return nil
}

// Stats prints the journal summary, and with Calendar the journalled days
// of the current year.
type Stats struct {
	Service  *app.Service
	Calendar bool
	JSON     bool
	Out      io.Writer
}

func (n *Stats) Do(ctx context.Context) error {
	s, err := n.Service.Stats(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return json.NewEncoder(outOr(n.Out)).Encode(s)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Stats(s)
	if n.Calendar {
		all, err := n.Service.Entries(ctx)
		if err != nil {
			return err
		}
		pp.Calendar(time.Now(), all...)
	}
	return nil
}

func outOr(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
