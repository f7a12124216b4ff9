package entry

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		title, description string
		want               int
	}{
		{"a b", "c", 3},
		{"", "", 0},
		{"  spaced   out  ", "\tline\none ", 4},
		{"Started Journal", "Today I started my new journal app!", 9},
	}
	for _, tc := range tests {
		e := &Entry{Title: tc.title, Description: tc.description}
		if got := e.Words(); got != tc.want {
			t.Fatalf("Words(%q, %q) = %d, want %d", tc.title, tc.description, got, tc.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !(&Entry{Title: "  ", Description: "\n\t"}).IsBlank() {
		t.Fatalf("expected whitespace-only entry to be blank")
	}
	if (&Entry{Description: "x"}).IsBlank() {
		t.Fatalf("expected entry with description to not be blank")
	}
}

func TestMatchesIsCaseInsensitive(t *testing.T) {
	e := &Entry{Title: "Walk in Park", Description: "Went for a walk."}
	for _, q := range []string{"", "park", "WENT", "walk in"} {
		if !e.Matches(q) {
			t.Fatalf("expected %q to match", q)
		}
	}
	if e.Matches("book") {
		t.Fatalf("expected book to not match")
	}
}

func TestCloneIsDeep(t *testing.T) {
	e := New("t", "d", time.Now())
	e.Images = []Image{NewImage("a.png", []byte{1, 2, 3})}
	e.AudioClips = []AudioClip{{Path: "/tmp/a.wav"}}

	cp := e.Clone()
	cp.Images[0].Data[0] = 9
	cp.AudioClips[0].Path = "/tmp/b.wav"

	if e.Images[0].Data[0] != 1 {
		t.Fatalf("clone shares image bytes")
	}
	if e.AudioClips[0].Path != "/tmp/a.wav" {
		t.Fatalf("clone shares audio clips")
	}
}

func TestNewDefaults(t *testing.T) {
	e := New("t", "d", time.Now())
	if e.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !e.ShowTitle {
		t.Fatalf("expected showTitle default true")
	}
	if e.IsBookmarked {
		t.Fatalf("expected bookmark default false")
	}
	if other := New("t", "d", time.Now()); other.ID == e.ID {
		t.Fatalf("expected unique ids")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, time.March, 31, 23, 30, 0, 0, time.Local)
	b := time.Date(2026, time.April, 1, 0, 15, 0, 0, time.Local)
	if got := DaysBetween(a, b); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := DaysBetween(b, a); got != -1 {
		t.Fatalf("expected -1 day, got %d", got)
	}
}

func TestEntryJSONKeepsDate(t *testing.T) {
	on := time.Date(2026, time.October, 3, 9, 0, 0, 0, time.UTC)
	e := New("t", "d", on)
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Entry
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Date.Equal(on) {
		t.Fatalf("expected %v, got %v", on, out.Date.Time)
	}
	if out.ID != e.ID || !out.ShowTitle {
		t.Fatalf("unexpected round trip: %+v", out)
	}
}

func TestImageSniffing(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if !NewImage("a.png", png).IsImage() {
		t.Fatalf("expected png to be detected as image")
	}
	if NewImage("a.txt", []byte("hello")).IsImage() {
		t.Fatalf("expected text to not be an image")
	}
}
