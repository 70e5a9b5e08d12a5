// Package merge reconciles freshly fetched article sets against the
// previously known set plus persisted per-article state. It is also the
// single write path for the four user-state flags.
package merge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/observability/metrics"
	"github.com/codenough/news-feed-app/internal/usecase/state"
)

// Engine performs identity-keyed merges and state mutations.
type Engine struct {
	states *state.Store
	logger *slog.Logger
}

// NewEngine creates a merge engine over the given state store.
func NewEngine(states *state.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{states: states, logger: logger}
}

// Merge combines incoming articles with the existing canonical set.
//
// User-set state on any article already known to the system is never
// overwritten by a re-fetch, while descriptive metadata (title,
// description, image) is refreshed from the newer fetch. Existing articles
// absent from the incoming set are retained: feeds are non-exhaustive each
// fetch, so disappearance is not evidence of deletion.
//
// The result is grouped new-first, then reconciled, then untouched
// carry-over. Group membership is deterministic; intra-group order follows
// input order. Callers apply the global publish-time sort.
func (e *Engine) Merge(existing, incoming []entity.Article) []entity.Article {
	byKey := make(map[string]int, len(existing))
	for i := range existing {
		byKey[existing[i].IdentityKey()] = i
	}

	var (
		added      []entity.Article
		reconciled []entity.Article
		matched    = make(map[string]bool, len(incoming))
		restored   int
	)

	for i := range incoming {
		art := incoming[i]
		key := art.IdentityKey()

		if matched[key] {
			// Duplicate identity within one fetch; first occurrence wins.
			continue
		}

		if idx, ok := byKey[key]; ok {
			art.SetFlags(existing[idx].Flags())
			matched[key] = true
			reconciled = append(reconciled, art)
			continue
		}

		if st, ok := e.states.Get(key); ok {
			// The user acted on this article before it left the in-memory
			// set (e.g. after a cache clear). Restore the persisted state.
			art.SetFlags(st)
			restored++
		}
		matched[key] = true
		added = append(added, art)
	}

	carryOver := make([]entity.Article, 0, len(existing))
	for i := range existing {
		if !matched[existing[i].IdentityKey()] {
			carryOver = append(carryOver, existing[i])
		}
	}

	out := make([]entity.Article, 0, len(added)+len(reconciled)+len(carryOver))
	out = append(out, added...)
	out = append(out, reconciled...)
	out = append(out, carryOver...)

	metrics.RecordMerge(len(added), len(reconciled), restored, len(out))
	e.logger.Debug("merge completed",
		slog.Int("added", len(added)),
		slog.Int("reconciled", len(reconciled)),
		slog.Int("restored", restored),
		slog.Int("carry_over", len(carryOver)))

	return out
}

// Mutate applies a state patch to the article with the given identity key,
// updating the in-memory article in place and persisting the four-flag
// snapshot through the state store.
//
// A persistence failure does not roll back the in-memory update; the error
// is returned for logging per the storage degradation policy.
func (e *Engine) Mutate(ctx context.Context, articles []entity.Article, key string, patch entity.StatePatch) error {
	for i := range articles {
		if articles[i].IdentityKey() != key {
			continue
		}
		articles[i].SetFlags(patch.Apply(articles[i].Flags()))
		if err := e.states.Put(ctx, key, patch); err != nil {
			return fmt.Errorf("persist state for %q: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", entity.ErrArticleNotFound, key)
}
