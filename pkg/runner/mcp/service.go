// Package mcp provides the Model Context Protocol server integration for diary.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal/viewmodel"
	"tableflip.dev/diary/pkg/stats"
)

// Service adapts the journal to transport-friendly values for the MCP server.
type Service struct {
	App *app.Service
}

// ErrEntryNotFound is returned when an entry cannot be located.
var ErrEntryNotFound = app.ErrEntryNotFound

// AddEntryOptions captures the parameters used to create a new entry.
type AddEntryOptions struct {
	Title       string
	Description string
	Date        *time.Time
}

// EditEntryOptions changes the fields that are set.
type EditEntryOptions struct {
	ID          string
	Title       *string
	Description *string
	Date        *time.Time
}

// EntryDTO is a transport-friendly projection of an entry. Media bytes are
// left out; only counts and clip paths are included.
type EntryDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	DateISO     string   `json:"date"`
	DateUnix    int64    `json:"dateUnix"`
	CreatedISO  string   `json:"created"`
	Bookmarked  bool     `json:"bookmarked"`
	ShowTitle   bool     `json:"showTitle"`
	Words       int      `json:"words"`
	ImageCount  int      `json:"imageCount"`
	AudioClips  []string `json:"audioClips,omitempty"`
}

// SectionDTO is one Today/Yesterday/month group.
type SectionDTO struct {
	Title   string     `json:"title"`
	Count   int        `json:"count"`
	Entries []EntryDTO `json:"entries"`
}

// NewService wraps the journal service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("journal is not configured")
	}
	return nil
}

// ListEntries returns the visible entries as one list sorted by date.
func (s *Service) ListEntries(ctx context.Context, q viewmodel.Query) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries, err := s.App.Filter(ctx, q)
	if err != nil {
		return nil, err
	}
	return toDTOs(entries), nil
}

// GroupEntries returns the visible entries in sections.
func (s *Service) GroupEntries(ctx context.Context, q viewmodel.Query) ([]SectionDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sections, err := s.App.Sections(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]SectionDTO, 0, len(sections))
	for _, sec := range sections {
		out = append(out, SectionDTO{
			Title:   sec.Title,
			Count:   len(sec.Entries),
			Entries: toDTOs(sec.Entries),
		})
	}
	return out, nil
}

// SearchEntries matches title and body, newest first, up to limit.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if strings.TrimSpace(query) == "" {
		return []EntryDTO{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	results, err := s.ListEntries(ctx, viewmodel.Query{Search: query})
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Stats summarises the journal.
func (s *Service) Stats(ctx context.Context) (stats.Stats, error) {
	if err := s.ready(); err != nil {
		return stats.Stats{}, err
	}
	return s.App.Stats(ctx)
}

// AddEntry creates a new entry.
func (s *Service) AddEntry(ctx context.Context, opts AddEntryOptions) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Title) == "" && strings.TrimSpace(opts.Description) == "" {
		return nil, errors.New("title or description is required")
	}
	d := app.Draft{Title: opts.Title, Description: opts.Description}
	if opts.Date != nil {
		d.Date = *opts.Date
	}
	e, err := s.App.Add(ctx, d)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// EditEntry updates the fields present in opts.
func (s *Service) EditEntry(ctx context.Context, opts EditEntryOptions) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.App.Edit(ctx, opts.ID, app.Patch{
		Title:       opts.Title,
		Description: opts.Description,
		Date:        opts.Date,
	})
	if err != nil {
		return nil, wrapNotFound(err, opts.ID)
	}
	dto := toDTO(e)
	return &dto, nil
}

// DeleteEntry removes an entry and its recordings.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return wrapNotFound(s.App.Delete(ctx, id), id)
}

// ToggleBookmark flips the bookmark flag.
func (s *Service) ToggleBookmark(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.App.ToggleBookmark(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, id)
	}
	dto := toDTO(e)
	return &dto, nil
}

// ToggleShowTitle flips whether the title is shown.
func (s *Service) ToggleShowTitle(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.App.ToggleShowTitle(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, id)
	}
	dto := toDTO(e)
	return &dto, nil
}

// EntryByID locates an entry by id and returns the DTO representation.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	e, err := s.App.Get(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, id)
	}
	dto := toDTO(e)
	return &dto, nil
}

func wrapNotFound(err error, id string) error {
	if errors.Is(err, app.ErrEntryNotFound) {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return err
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		DateISO:     e.Date.Local().Format("2006-01-02"),
		DateUnix:    e.Date.Unix(),
		CreatedISO:  entry.FormatTime(e.Created.Time),
		Bookmarked:  e.IsBookmarked,
		ShowTitle:   e.ShowTitle,
		Words:       e.Words(),
		ImageCount:  len(e.Images),
	}
	for _, clip := range e.AudioClips {
		dto.AudioClips = append(dto.AudioClips, clip.Path)
	}
	return dto
}

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(input string) (*time.Time, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return &t, nil
	}
	t, err := entry.ParseTime(v)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC3339", input)
	}
	return &t, nil
}
