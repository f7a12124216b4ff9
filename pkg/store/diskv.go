package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/logging"
)

// Persistence defines the persistence contract for journal entries and
// settings.
type Persistence interface {
	Settings
	ListAll(ctx context.Context) []*entry.Entry
	Get(ctx context.Context, id string) (*entry.Entry, error)
	Store(e *entry.Entry) error
	Delete(id string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Settings is simple key-value storage for preferences.
type Settings interface {
	Setting(key string) (string, bool)
	SetSetting(key, value string) error
}

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("store: entry not found")

const (
	entriesPrefix  = "entries"
	settingsPrefix = "settings"
	audioDir       = "audio"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No cache: other processes write the same files and Watch
		// consumers reload from disk.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	e.ID = pk.FileName
	return e, nil
}

func (p *persistence) ListAll(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.KeysPrefix(entriesPrefix+"/", ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			logging.FromContext(ctx).Warn(ctx, "skip unreadable entry", "key", key, "error", err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Get(_ context.Context, id string) (*entry.Entry, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, ErrNotFound
	}
	key := entryKey(id)
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	return p.read(key)
}

func (p *persistence) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if e.ID == "" {
		e.ID = entry.NewID()
	}
	if strings.Contains(e.ID, "/") {
		return fmt.Errorf("store: invalid entry id %q", e.ID)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(entryKey(e.ID), data)
}

func (p *persistence) Delete(id string) error {
	key := entryKey(id)
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *persistence) Setting(key string) (string, bool) {
	k := settingKey(key)
	if !p.d.Has(k) {
		return "", false
	}
	val, err := p.d.Read(k)
	if err != nil {
		ctx := context.Background()
		logging.FromContext(ctx).Warn(ctx, "skip unreadable setting", "key", k, "error", err)
		return "", false
	}
	return string(val), true
}

func (p *persistence) SetSetting(key, value string) error {
	if strings.TrimSpace(key) == "" || strings.Contains(key, "/") {
		return fmt.Errorf("store: invalid setting key %q", key)
	}
	return p.d.WriteString(settingKey(key), value)
}

// sortEntries orders newest created first, matching insert-at-front.
func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.After(rt)
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), "/")
}

// entryKey makes `entries/<id>`
func entryKey(id string) string {
	return entriesPrefix + "/" + id
}

// settingKey makes `settings/<name>`
func settingKey(name string) string {
	return settingsPrefix + "/" + name
}
