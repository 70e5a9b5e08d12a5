// Package source manages the registry of configured feed sources backed by
// a YAML file.
package source

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/codenough/news-feed-app/internal/domain/entity"
)

// registryFile is the on-disk document shape.
type registryFile struct {
	Sources []*entity.Source `yaml:"sources"`
}

// Registry is a concurrency-safe source list persisted to a YAML file.
// Every mutation rewrites the file before returning.
type Registry struct {
	mu      sync.RWMutex
	path    string
	sources []*entity.Source
	logger  *slog.Logger
}

// NewRegistry creates a registry backed by the YAML file at path. The file
// is created on first save if it does not exist.
func NewRegistry(path string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{path: path, logger: logger}
}

// Load reads the registry file. A missing file yields an empty registry.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.sources = nil
			return nil
		}
		return fmt.Errorf("read source registry: %w", err)
	}

	var doc registryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse source registry: %w", err)
	}

	for _, src := range doc.Sources {
		if src.ID == "" {
			src.ID = uuid.NewString()
		}
		if err := src.Validate(); err != nil {
			return fmt.Errorf("source %q: %w", src.Name, err)
		}
	}

	r.sources = doc.Sources
	r.logger.Info("source registry loaded",
		slog.String("path", r.path),
		slog.Int("sources", len(r.sources)))
	return nil
}

// List returns a copy of all sources in name order.
func (r *Registry) List() []*entity.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(false)
}

// ListEnabled returns a copy of the enabled sources in name order.
func (r *Registry) ListEnabled() []*entity.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(true)
}

func (r *Registry) snapshotLocked(enabledOnly bool) []*entity.Source {
	out := make([]*entity.Source, 0, len(r.sources))
	for _, src := range r.sources {
		if enabledOnly && !src.Enabled {
			continue
		}
		cp := *src
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Get returns the source with the given ID.
func (r *Registry) Get(id string) (*entity.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.findLocked(id)
	if src == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrSourceNotFound, id)
	}
	cp := *src
	return &cp, nil
}

// Add validates and appends a new source. Feed URLs must be unique. A
// generated ID is written back to src when it has none.
func (r *Registry) Add(src *entity.Source) error {
	if err := src.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sources {
		if strings.EqualFold(existing.FeedURL, src.FeedURL) {
			return fmt.Errorf("%w: duplicate feed URL %q", entity.ErrInvalidSource, src.FeedURL)
		}
	}

	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	cp := *src
	r.sources = append(r.sources, &cp)
	return r.persistLocked()
}

// Update replaces the named fields of an existing source.
func (r *Registry) Update(id string, name, feedURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := r.findLocked(id)
	if src == nil {
		return fmt.Errorf("%w: %s", entity.ErrSourceNotFound, id)
	}

	updated := *src
	if name != "" {
		updated.Name = name
	}
	if feedURL != "" {
		updated.FeedURL = feedURL
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	*src = updated
	return r.persistLocked()
}

// SetEnabled toggles a source without removing its configuration.
func (r *Registry) SetEnabled(id string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := r.findLocked(id)
	if src == nil {
		return fmt.Errorf("%w: %s", entity.ErrSourceNotFound, id)
	}
	src.Enabled = enabled
	return r.persistLocked()
}

// Remove deletes a source from the registry.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, src := range r.sources {
		if src.ID == id {
			r.sources = append(r.sources[:i], r.sources[i+1:]...)
			return r.persistLocked()
		}
	}
	return fmt.Errorf("%w: %s", entity.ErrSourceNotFound, id)
}

// TouchFetchedAt records a successful fetch time for a source.
func (r *Registry) TouchFetchedAt(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := r.findLocked(id)
	if src == nil {
		return fmt.Errorf("%w: %s", entity.ErrSourceNotFound, id)
	}
	src.LastFetchedAt = &at
	return r.persistLocked()
}

func (r *Registry) findLocked(id string) *entity.Source {
	for _, src := range r.sources {
		if src.ID == id {
			return src
		}
	}
	return nil
}

// persistLocked writes the registry atomically via a temp file rename.
func (r *Registry) persistLocked() error {
	data, err := yaml.Marshal(registryFile{Sources: r.sources})
	if err != nil {
		return fmt.Errorf("encode source registry: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".sources-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp registry: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp registry: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace registry: %w", err)
	}
	return nil
}
