package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/journal/viewmodel"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/media"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/stats"
	"tableflip.dev/diary/pkg/store"
)

// Service owns the journal for one process. It loads the collection from
// persistence, applies identity-keyed mutations and writes them back, so the
// CLI and the MCP server share the same logic. Calls are serialized.
type Service struct {
	Persistence store.Persistence
	// Media configures editor sessions.
	Media media.Options
	// Now is the clock; nil means time.Now.
	Now func() time.Time

	mu      sync.Mutex
	journal *journal.Collection
}

var (
	ErrEntryNotFound = errors.New("app: entry not found")
	errNoPersistence = errors.New("app: no persistence configured")
)

// Draft holds the editable fields of an entry.
type Draft struct {
	Title       string
	Description string
	Date        time.Time
	Images      []entry.Image
	AudioClips  []entry.AudioClip
}

// Patch changes the fields that are set.
type Patch struct {
	Title       *string
	Description *string
	Date        *time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load replaces the in-memory collection with what persistence holds.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	s.journal = journal.New(s.Persistence.ListAll(ctx)...)
	return nil
}

func (s *Service) collection(ctx context.Context) (*journal.Collection, error) {
	if s.journal == nil {
		if err := s.load(ctx); err != nil {
			return nil, err
		}
	}
	return s.journal, nil
}

// Entries returns every entry, blank ones included, in collection order.
func (s *Service) Entries(ctx context.Context) ([]*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

// Get returns a copy of the entry with id.
func (s *Service) Get(ctx context.Context, id string) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := c.Get(id)
	if !ok {
		return nil, ErrEntryNotFound
	}
	return e.Clone(), nil
}

// Sections groups the visible entries into Today, Yesterday and months.
func (s *Service) Sections(ctx context.Context, q viewmodel.Query) ([]viewmodel.Section, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.Group(all, q, viewmodel.WithNow(s.now())), nil
}

// Filter returns the visible entries as one list sorted by date.
func (s *Service) Filter(ctx context.Context, q viewmodel.Query) ([]*entry.Entry, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return viewmodel.Filter(all, q), nil
}

// Stats summarises the whole journal.
func (s *Service) Stats(ctx context.Context) (stats.Stats, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return stats.Stats{}, err
	}
	return stats.Compute(all), nil
}

// Add creates an entry at the front of the collection and stores it.
func (s *Service) Add(ctx context.Context, d Draft) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	e := entry.New(d.Title, d.Description, clampDate(d.Date, now))
	e.Created = entry.Timestamp{Time: now}
	e.Images = d.Images
	e.AudioClips = d.AudioClips
	c.InsertAtFront(e)
	if err := s.Persistence.Store(e); err != nil {
		c.RemoveByID(e.ID)
		return nil, fmt.Errorf("app: store entry: %w", err)
	}
	logging.FromContext(ctx).Debug(ctx, "entry added", "id", e.ID)
	return e.Clone(), nil
}

// Update applies change to the entry with id and stores the result. change
// reports whether anything changed; nothing is stored when it returns false.
func (s *Service) Update(ctx context.Context, id string, change func(*entry.Entry) bool) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, id, change)
}

func (s *Service) update(ctx context.Context, id string, change func(*entry.Entry) bool) (*entry.Entry, error) {
	c, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	before, ok := c.Get(id)
	if !ok {
		return nil, ErrEntryNotFound
	}
	after, changed := c.MutateByID(id, change)
	if !changed {
		return after.Clone(), nil
	}
	if err := s.Persistence.Store(after); err != nil {
		c.MutateByID(id, func(e *entry.Entry) bool {
			*e = *before
			return true
		})
		return nil, fmt.Errorf("app: store entry: %w", err)
	}
	return after.Clone(), nil
}

// Edit sets the fields present in p. Dates are clamped to today or earlier.
func (s *Service) Edit(ctx context.Context, id string, p Patch) (*entry.Entry, error) {
	now := s.now()
	return s.Update(ctx, id, func(e *entry.Entry) bool {
		changed := false
		if p.Title != nil && *p.Title != e.Title {
			e.Title = *p.Title
			changed = true
		}
		if p.Description != nil && *p.Description != e.Description {
			e.Description = *p.Description
			changed = true
		}
		if p.Date != nil {
			e.Date = entry.Timestamp{Time: clampDate(*p.Date, now)}
			changed = true
		}
		return changed
	})
}

// ToggleBookmark flips the bookmark flag of id.
func (s *Service) ToggleBookmark(ctx context.Context, id string) (*entry.Entry, error) {
	return s.Update(ctx, id, func(e *entry.Entry) bool {
		e.IsBookmarked = !e.IsBookmarked
		return true
	})
}

// ToggleShowTitle flips whether the title of id is shown.
func (s *Service) ToggleShowTitle(ctx context.Context, id string) (*entry.Entry, error) {
	return s.Update(ctx, id, func(e *entry.Entry) bool {
		e.ShowTitle = !e.ShowTitle
		return true
	})
}

// Delete removes an entry permanently, along with its recordings.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.collection(ctx)
	if err != nil {
		return err
	}
	removed, ok := c.RemoveByID(id)
	if !ok {
		return ErrEntryNotFound
	}
	if err := s.Persistence.Delete(id); err != nil {
		c.InsertAtFront(removed)
		return fmt.Errorf("app: delete entry: %w", err)
	}
	for _, clip := range removed.AudioClips {
		if err := os.Remove(clip.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.FromContext(ctx).Warn(ctx, "remove clip failed", "path", clip.Path, "err", err)
		}
	}
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Print hands the entry with id to p and returns what the print service
// reported.
func (s *Service) Print(ctx context.Context, id string, p printers.PrintService) (string, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	res := async.Await(ctx, p.Print(ctx, e))
	return res.Value, res.Err
}

// Resolve finds the entry an abbreviated id refers to. A unique prefix is
// enough.
func (s *Service) Resolve(ctx context.Context, prefix string) (string, error) {
	all, err := s.Entries(ctx)
	if err != nil {
		return "", err
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrEntryNotFound
	}
	var match string
	for _, e := range all {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("app: id %q is ambiguous", prefix)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", ErrEntryNotFound
	}
	return match, nil
}

// clampDate keeps d on or before today. A zero date means now.
func clampDate(d, now time.Time) time.Time {
	if d.IsZero() || entry.DaysBetween(d, now) < 0 {
		return now
	}
	return d
}
