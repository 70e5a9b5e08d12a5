// Package reader exposes the application facade: a canonical in-memory
// article set refreshed from all sources and mutated through a single
// write path.
package reader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/observability/metrics"
	"github.com/codenough/news-feed-app/internal/usecase/fetch"
	"github.com/codenough/news-feed-app/internal/usecase/merge"
	"github.com/codenough/news-feed-app/internal/usecase/source"
	"github.com/codenough/news-feed-app/internal/usecase/state"
)

// Service owns the canonical article set. All access is serialized so a
// running refresh and a state mutation never interleave partially.
type Service struct {
	mu       sync.RWMutex
	articles []entity.Article

	fetcher  *fetch.Service
	engine   *merge.Engine
	states   *state.Store
	snapshot *state.Snapshot
	registry *source.Registry
	logger   *slog.Logger

	lastRefresh time.Time
	lastStatus  fetch.Status
}

// NewService wires the reader facade.
func NewService(
	fetcher *fetch.Service,
	engine *merge.Engine,
	states *state.Store,
	snapshot *state.Snapshot,
	registry *source.Registry,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher:  fetcher,
		engine:   engine,
		states:   states,
		snapshot: snapshot,
		registry: registry,
		logger:   logger,
	}
}

// Load restores persisted state and the cached article set from disk.
// Called once at startup, before the first refresh.
func (s *Service) Load(ctx context.Context) error {
	if err := s.states.Hydrate(ctx); err != nil {
		return err
	}
	if err := s.registry.Load(); err != nil {
		return err
	}

	cached, err := s.snapshot.Load(ctx)
	if err != nil {
		// Cache miss or corruption only delays content until the first
		// refresh; state and sources are already restored.
		s.logger.Warn("article snapshot unavailable", slog.Any("error", err))
		return nil
	}

	// The snapshot may predate state mutations made after the last
	// refresh, so the persisted state is authoritative over cached flags.
	for i := range cached {
		if st, ok := s.states.Get(cached[i].IdentityKey()); ok {
			cached[i].SetFlags(st)
		}
	}

	s.mu.Lock()
	s.articles = cached
	s.mu.Unlock()

	metrics.UpdateStateEntries(s.states.Len())
	s.logger.Info("article snapshot restored", slog.Int("articles", len(cached)))
	return nil
}

// Refresh fetches all enabled sources, merges the results into the
// canonical set and persists the new snapshot.
//
// On total failure the previous article set is kept untouched and the
// error status is reported; stale content beats no content.
func (s *Service) Refresh(ctx context.Context) (fetch.Status, error) {
	start := time.Now()
	sources := s.registry.ListEnabled()

	results, status := s.fetcher.FetchAll(ctx, sources)
	metrics.RecordRefresh(string(status), time.Since(start))

	incoming, err := fetch.Collect(results)
	if err != nil {
		s.mu.Lock()
		s.lastRefresh = time.Now()
		s.lastStatus = status
		s.mu.Unlock()
		s.logger.Error("refresh failed for all sources", slog.Any("error", err))
		return status, err
	}

	now := time.Now()
	for i := range results {
		if results[i].Err == nil {
			if terr := s.registry.TouchFetchedAt(results[i].Source.ID, now); terr != nil {
				s.logger.Warn("record fetch time failed",
					slog.String("source", results[i].Source.Name),
					slog.Any("error", terr))
			}
		}
	}

	s.mu.Lock()
	merged := s.engine.Merge(s.articles, incoming)
	merge.SortByPublished(merged)
	s.articles = merged
	s.lastRefresh = now
	s.lastStatus = status
	s.mu.Unlock()

	if err := s.snapshot.Save(ctx, merged); err != nil {
		s.logger.Warn("article snapshot save failed", slog.Any("error", err))
	}

	s.logger.Info("refresh completed",
		slog.String("status", string(status)),
		slog.Int("articles", len(merged)),
		slog.Duration("elapsed", time.Since(start)))
	return status, nil
}

// Articles returns the canonical set filtered by f, newest first.
func (s *Service) Articles(f merge.Filter) []entity.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return f.Apply(s.articles)
}

// Article returns a single article by identity key.
func (s *Service) Article(key string) (entity.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.articles {
		if s.articles[i].IdentityKey() == key {
			return s.articles[i], nil
		}
	}
	return entity.Article{}, entity.ErrArticleNotFound
}

// MutateState applies a user-state patch to the article with the given
// identity key.
func (s *Service) MutateState(ctx context.Context, key string, patch entity.StatePatch) error {
	if patch.IsZero() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.Mutate(ctx, s.articles, key, patch); err != nil {
		return err
	}
	metrics.UpdateStateEntries(s.states.Len())
	return nil
}

// Status reports the time and outcome of the most recent refresh.
func (s *Service) Status() (time.Time, fetch.Status, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh, s.lastStatus, len(s.articles)
}
