// Package journal holds the in-memory entry collection and its identity-keyed
// mutations.
package journal

import (
	"tableflip.dev/diary/pkg/entry"
)

// Collection is an ordered list of entries. Order carries no meaning beyond
// tie-breaking; listings derive their own order.
//
// A Collection is not safe for concurrent use; it has a single owner.
type Collection struct {
	entries []*entry.Entry
}

// New returns a collection holding the given entries in order.
func New(entries ...*entry.Entry) *Collection {
	c := &Collection{}
	for _, e := range entries {
		if e == nil {
			continue
		}
		if e.ID == "" {
			e.ID = entry.NewID()
		}
		c.entries = append(c.entries, e)
	}
	return c
}

// Len is the number of entries, blank ones included.
func (c *Collection) Len() int {
	return len(c.entries)
}

// All returns the entries in collection order. The slice is a copy; the
// entries are shared.
func (c *Collection) All() []*entry.Entry {
	out := make([]*entry.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get looks up an entry by id.
func (c *Collection) Get(id string) (*entry.Entry, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	return c.entries[i], true
}

// InsertAtFront places e at index 0, assigning an id when missing.
func (c *Collection) InsertAtFront(e *entry.Entry) *entry.Entry {
	if e == nil {
		return nil
	}
	if e.ID == "" {
		e.ID = entry.NewID()
	}
	c.entries = append([]*entry.Entry{e}, c.entries...)
	return e
}

// RemoveByID drops the entry with id. Unknown ids are ignored.
func (c *Collection) RemoveByID(id string) (*entry.Entry, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	removed := c.entries[i]
	c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
	return removed, true
}

// MutateByID applies change to a copy of the entry and swaps the copy in only
// when change returns true, so callers never observe a half-applied edit. The
// id cannot be changed. Unknown ids are ignored.
func (c *Collection) MutateByID(id string, change func(*entry.Entry) bool) (*entry.Entry, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	staged := c.entries[i].Clone()
	if !change(staged) {
		return c.entries[i], false
	}
	staged.ID = id
	c.entries[i] = staged
	return staged, true
}

// ToggleBookmark flips IsBookmarked.
func (c *Collection) ToggleBookmark(id string) (*entry.Entry, bool) {
	return c.MutateByID(id, func(e *entry.Entry) bool {
		e.IsBookmarked = !e.IsBookmarked
		return true
	})
}

// ToggleShowTitle flips ShowTitle.
func (c *Collection) ToggleShowTitle(id string) (*entry.Entry, bool) {
	return c.MutateByID(id, func(e *entry.Entry) bool {
		e.ShowTitle = !e.ShowTitle
		return true
	})
}

func (c *Collection) index(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
