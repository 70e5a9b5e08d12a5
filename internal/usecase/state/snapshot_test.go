package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/infra/persistence/memory"
	"github.com/codenough/news-feed-app/internal/usecase/state"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	snap := state.NewSnapshot(memory.New())
	ctx := context.Background()

	published := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	articles := []entity.Article{
		{
			ID:          "src-100-0",
			Title:       "Hello",
			Description: "World",
			URL:         "https://example.com/1",
			SourceName:  "src",
			PublishedAt: published,
			Category:    "General",
			Read:        true,
		},
	}

	require.NoError(t, snap.Save(ctx, articles))

	loaded, err := snap.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	if diff := cmp.Diff(articles, loaded); diff != "" {
		t.Errorf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, published.Equal(loaded[0].PublishedAt),
		"published_at must rehydrate to the same instant")
}

func TestSnapshot_LoadMissing(t *testing.T) {
	snap := state.NewSnapshot(memory.New())

	loaded, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
