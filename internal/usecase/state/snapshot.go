package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/repository"
)

// Snapshot persists the canonical article set so the last-known-good
// articles survive a restart. PublishedAt round-trips as RFC 3339 via the
// default time.Time JSON encoding.
type Snapshot struct {
	blob repository.BlobStore
}

// NewSnapshot creates a snapshot over the given blob medium.
func NewSnapshot(blob repository.BlobStore) *Snapshot {
	return &Snapshot{blob: blob}
}

// Save serializes the article set. A quota rejection is reported but the
// snapshot is a cache: callers log and move on.
func (s *Snapshot) Save(ctx context.Context, articles []entity.Article) error {
	data, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("encode article snapshot: %w", err)
	}
	if err := s.blob.Save(ctx, data); err != nil {
		return fmt.Errorf("save article snapshot: %w", err)
	}
	return nil
}

// Load rehydrates the cached article set. An absent snapshot yields an
// empty slice.
func (s *Snapshot) Load(ctx context.Context) ([]entity.Article, error) {
	data, err := s.blob.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrBlobNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load article snapshot: %w", err)
	}

	var articles []entity.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("decode article snapshot: %w", err)
	}
	return articles, nil
}
