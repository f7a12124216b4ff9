package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/diary/pkg/logging"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventEntriesChanged indicates entries were added, edited or removed.
	EventEntriesChanged EventType = iota

	// EventSettingsChanged indicates a setting such as the reminder time
	// changed.
	EventSettingsChanged

	// EventInvalidated signals a change that could not be classified;
	// callers should refresh everything.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	// ID is the entry id for EventEntriesChanged, or the setting key for
	// EventSettingsChanged, when known.
	ID string
}

// settleDelay is how long the store has to be quiet before a burst of writes
// is reported.
const settleDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Writes to the same entry
// within settleDelay of each other are reported once. The channel is closed
// once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	for _, dir := range []string{entriesPrefix, settingsPrefix} {
		path := filepath.Join(p.basePath, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
		}
		if err := watcher.Add(path); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)
	go p.watch(ctx, watcher, events)
	return events, nil
}

func (p *persistence) watch(ctx context.Context, watcher *fsnotify.Watcher, events chan<- Event) {
	log := logging.FromContext(ctx)
	defer close(events)
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Warn(ctx, "close watcher", "error", err)
		}
	}()

	pending := make(map[Event]struct{})
	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn(ctx, "watch journal", "error", err)
			pending[Event{Type: EventInvalidated}] = struct{}{}
			settle.Reset(settleDelay)

		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			ev, ok := p.eventForPath(evt.Name)
			if !ok {
				continue
			}
			pending[ev] = struct{}{}
			settle.Reset(settleDelay)

		case <-settle.C:
			for ev := range pending {
				select {
				case events <- ev:
				default:
					// A slow reader reloads everything on the next event anyway.
					log.Debug(ctx, "journal change dropped", "id", ev.ID)
				}
			}
			clear(pending)
		}
	}
}

// eventForPath classifies a file under the entries or settings directory.
func (p *persistence) eventForPath(path string) (Event, bool) {
	dir, name := filepath.Split(filepath.Clean(path))
	if name == "" {
		return Event{}, false
	}
	switch filepath.Clean(dir) {
	case filepath.Join(p.basePath, entriesPrefix):
		return Event{Type: EventEntriesChanged, ID: name}, true
	case filepath.Join(p.basePath, settingsPrefix):
		return Event{Type: EventSettingsChanged, ID: name}, true
	}
	return Event{}, false
}
