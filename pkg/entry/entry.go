// Package entry defines the journal entry record and its media attachments.
package entry

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// New creates an entry dated on the given day with a fresh identifier.
func New(title, description string, on time.Time) *Entry {
	return &Entry{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Date:        Timestamp{Time: on},
		Created:     Timestamp{Time: time.Now()},
		ShowTitle:   true,
	}
}

// NewID returns an opaque, never reused entry identifier.
func NewID() string {
	return uuid.NewString()
}

// Entry is one journal record.
type Entry struct {
	ID           string      `json:"id"`
	Title        string      `json:"title,omitempty"`
	Description  string      `json:"description,omitempty"`
	Date         Timestamp   `json:"date"`
	Created      Timestamp   `json:"created"`
	IsBookmarked bool        `json:"bookmarked,omitempty"`
	ShowTitle    bool        `json:"showTitle"`
	Images       []Image     `json:"images,omitempty"`
	AudioClips   []AudioClip `json:"audioClips,omitempty"`
}

// Image is an attached picture. Data holds the raw encoded bytes.
type Image struct {
	Name        string `json:"name,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data"`
}

// NewImage wraps raw bytes, sniffing the content type.
func NewImage(name string, data []byte) Image {
	return Image{
		Name:        name,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
}

// IsImage reports whether the sniffed content type is an image.
func (i Image) IsImage() bool {
	return strings.HasPrefix(i.ContentType, "image/")
}

// Digest identifies the image by content.
func (i Image) Digest() string {
	sum := sha256.Sum256(i.Data)
	return hex.EncodeToString(sum[:])
}

// AudioClip references a recording on disk.
type AudioClip struct {
	Path     string    `json:"path"`
	Recorded Timestamp `json:"recorded"`
}

// IsBlank reports whether both title and description are empty or whitespace.
// Blank entries never show up in listings.
func (e *Entry) IsBlank() bool {
	return strings.TrimSpace(e.Title) == "" && strings.TrimSpace(e.Description) == ""
}

// Matches reports a case-insensitive substring match on title or description.
func (e *Entry) Matches(search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle)
}

// Words counts the words of the title and the description.
func (e *Entry) Words() int {
	return WordCount(e.Title) + WordCount(e.Description)
}

// WordCount counts maximal runs of non-space characters.
func WordCount(s string) int {
	return len(strings.FieldsFunc(s, unicode.IsSpace))
}

// Day is the local calendar day of the entry.
func (e *Entry) Day() time.Time {
	return e.Date.Day()
}

// Clone returns a deep copy so callers can stage changes.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Images != nil {
		cp.Images = make([]Image, len(e.Images))
		for i, img := range e.Images {
			img.Data = append([]byte(nil), img.Data...)
			cp.Images[i] = img
		}
	}
	if e.AudioClips != nil {
		cp.AudioClips = append([]AudioClip(nil), e.AudioClips...)
	}
	return &cp
}

// Heading is what listings show for the entry: the title when shown and set,
// otherwise the first line of the description.
func (e *Entry) Heading() string {
	if e.ShowTitle && strings.TrimSpace(e.Title) != "" {
		return e.Title
	}
	first, _, _ := strings.Cut(strings.TrimSpace(e.Description), "\n")
	return first
}
