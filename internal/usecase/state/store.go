// Package state implements the durable per-article user-state map. The
// store is capacity-bounded, prunes by write time, and degrades gracefully
// when the persistence medium rejects a write.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/observability/metrics"
	"github.com/codenough/news-feed-app/internal/repository"
)

// DefaultMaxItems bounds the number of persisted state entries when no
// explicit cap is configured.
const DefaultMaxItems = 1000

// Store is a durable identity-key -> ArticleState map backed by a blob
// store. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	blob     repository.BlobStore
	entries  map[string]entity.ArticleState
	maxItems int
	logger   *slog.Logger
}

// NewStore creates a state store over the given blob medium. maxItems <= 0
// selects DefaultMaxItems.
func NewStore(blob repository.BlobStore, maxItems int, logger *slog.Logger) *Store {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		blob:     blob,
		entries:  make(map[string]entity.ArticleState),
		maxItems: maxItems,
		logger:   logger,
	}
}

// Hydrate loads the persisted entries. An absent blob is an empty store,
// not an error. Called once at process start.
func (s *Store) Hydrate(ctx context.Context) error {
	data, err := s.blob.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrBlobNotFound) {
			return nil
		}
		return fmt.Errorf("load state blob: %w", err)
	}

	entries := make(map[string]entity.ArticleState)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decode state blob: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	metrics.UpdateStateEntries(len(entries))
	return nil
}

// Get returns the persisted state for an identity key.
func (s *Store) Get(key string) (entity.ArticleState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.entries[key]
	return st, ok
}

// Len returns the number of persisted entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Put merges the patch into the entry for key (creating it with defaults
// if absent), refreshes LastModifiedAt, prunes to the capacity bound, and
// persists.
//
// When the medium rejects the write for size, the store keeps only the
// maxItems/2 most recent entries and retries once; if that also fails the
// write stays in memory only and the error is returned for logging. The
// failure is never fatal to the session.
func (s *Store) Put(ctx context.Context, key string, patch entity.StatePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.entries[key]
	st = patch.Apply(st)
	st.LastModifiedAt = time.Now()
	s.entries[key] = st

	if pruned := s.pruneLocked(s.maxItems); pruned > 0 {
		s.logger.Debug("pruned state entries",
			slog.Int("pruned", pruned),
			slog.Int("remaining", len(s.entries)))
		metrics.RecordStatePruned(pruned)
	}

	return s.persistLocked(ctx)
}

// persistLocked serializes and saves the entries, applying the quota
// degradation path. Caller holds the mutex.
func (s *Store) persistLocked(ctx context.Context) error {
	err := s.saveLocked(ctx)
	if err == nil {
		metrics.UpdateStateEntries(len(s.entries))
		return nil
	}
	if !errors.Is(err, entity.ErrQuotaExceeded) {
		return fmt.Errorf("persist state: %w", err)
	}

	// Quota hit: halve the retained set and retry once.
	metrics.RecordStateQuotaFallback()
	pruned := s.pruneLocked(s.maxItems / 2)
	s.logger.Warn("state write exceeded quota, halving retained entries",
		slog.Int("pruned", pruned),
		slog.Int("remaining", len(s.entries)))

	if err := s.saveLocked(ctx); err != nil {
		metrics.RecordStateWriteError()
		return fmt.Errorf("persist state after quota fallback: %w", err)
	}
	metrics.UpdateStateEntries(len(s.entries))
	return nil
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return s.blob.Save(ctx, data)
}

// pruneLocked retains the `keep` entries with the most recent
// LastModifiedAt and returns the number discarded. Eviction is by write
// time, not by read. Caller holds the mutex.
func (s *Store) pruneLocked(keep int) int {
	if keep <= 0 || len(s.entries) <= keep {
		return 0
	}

	type kv struct {
		key string
		at  time.Time
	}
	all := make([]kv, 0, len(s.entries))
	for k, st := range s.entries {
		all = append(all, kv{key: k, at: st.LastModifiedAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].at.After(all[j].at) })

	pruned := 0
	for _, e := range all[keep:] {
		delete(s.entries, e.key)
		pruned++
	}
	return pruned
}

// Clear drops all entries, in memory and on the medium.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entity.ArticleState)
	metrics.UpdateStateEntries(0)
	return s.blob.Clear(ctx)
}
