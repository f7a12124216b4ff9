package journal

import (
	"testing"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

func seeded() (*Collection, []*entry.Entry) {
	now := time.Now()
	a := entry.New("A", "first", now)
	b := entry.New("B", "second", now.AddDate(0, 0, -1))
	c := entry.New("C", "third", now.AddDate(0, 0, -2))
	return New(a, b, c), []*entry.Entry{a, b, c}
}

func ids(c *Collection) []string {
	var out []string
	for _, e := range c.All() {
		out = append(out, e.ID)
	}
	return out
}

func TestInsertAtFront(t *testing.T) {
	c, seed := seeded()
	e := c.InsertAtFront(&entry.Entry{Title: "new"})
	if e.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	got := ids(c)
	want := []string{e.ID, seed[0].ID, seed[1].ID, seed[2].ID}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestInsertAtFrontKeepsExistingID(t *testing.T) {
	c := New()
	e := c.InsertAtFront(&entry.Entry{ID: "fixed", Title: "x"})
	if e.ID != "fixed" {
		t.Fatalf("expected id to be kept, got %s", e.ID)
	}
}

func TestRemoveByIDUnknownIsNoop(t *testing.T) {
	c, _ := seeded()
	before := ids(c)
	if _, ok := c.RemoveByID("does-not-exist"); ok {
		t.Fatalf("expected no removal")
	}
	after := ids(c)
	if len(before) != len(after) {
		t.Fatalf("collection changed: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("collection changed: %v -> %v", before, after)
		}
	}
}

func TestRemoveByID(t *testing.T) {
	c, seed := seeded()
	removed, ok := c.RemoveByID(seed[1].ID)
	if !ok || removed != seed[1] {
		t.Fatalf("expected B removed")
	}
	got := ids(c)
	if len(got) != 2 || got[0] != seed[0].ID || got[1] != seed[2].ID {
		t.Fatalf("unexpected order after remove: %v", got)
	}
}

func TestMutateByIDIsAllOrNothing(t *testing.T) {
	c, seed := seeded()
	_, ok := c.MutateByID(seed[0].ID, func(e *entry.Entry) bool {
		e.Title = "changed"
		e.Description = "changed"
		return false
	})
	if ok {
		t.Fatalf("expected aborted mutation to report false")
	}
	got, _ := c.Get(seed[0].ID)
	if got.Title != "A" || got.Description != "first" {
		t.Fatalf("aborted mutation leaked: %+v", got)
	}

	updated, ok := c.MutateByID(seed[0].ID, func(e *entry.Entry) bool {
		e.Title = "changed"
		e.ID = "hijack"
		return true
	})
	if !ok || updated.Title != "changed" {
		t.Fatalf("expected mutation applied")
	}
	if updated.ID != seed[0].ID {
		t.Fatalf("id must be immutable, got %s", updated.ID)
	}
	if _, ok := c.MutateByID("missing", func(*entry.Entry) bool { return true }); ok {
		t.Fatalf("expected unknown id to be ignored")
	}
}

func TestToggles(t *testing.T) {
	c, seed := seeded()
	e, _ := c.ToggleBookmark(seed[2].ID)
	if !e.IsBookmarked {
		t.Fatalf("expected bookmarked")
	}
	e, _ = c.ToggleBookmark(seed[2].ID)
	if e.IsBookmarked {
		t.Fatalf("expected bookmark cleared")
	}
	e, _ = c.ToggleShowTitle(seed[2].ID)
	if e.ShowTitle {
		t.Fatalf("expected title hidden")
	}
}
