package state_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/infra/persistence/memory"
	"github.com/codenough/news-feed-app/internal/usecase/state"
)

func boolPtr(b bool) *bool { return &b }

func TestStore_PutCreatesEntryWithDefaults(t *testing.T) {
	store := state.NewStore(memory.New(), 10, nil)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k1", entity.StatePatch{Read: boolPtr(true)}))

	st, ok := store.Get("k1")
	require.True(t, ok)
	assert.True(t, st.Read)
	assert.False(t, st.Bookmarked)
	assert.WithinDuration(t, time.Now(), st.LastModifiedAt, 5*time.Second)
}

func TestStore_PutMergesIntoExisting(t *testing.T) {
	store := state.NewStore(memory.New(), 10, nil)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k1", entity.StatePatch{Read: boolPtr(true)}))
	require.NoError(t, store.Put(ctx, "k1", entity.StatePatch{Bookmarked: boolPtr(true)}))

	st, _ := store.Get("k1")
	assert.True(t, st.Read, "earlier flags survive later patches")
	assert.True(t, st.Bookmarked)
}

func TestStore_HydrateRoundTrip(t *testing.T) {
	blob := memory.New()
	ctx := context.Background()

	first := state.NewStore(blob, 10, nil)
	require.NoError(t, first.Put(ctx, "k1", entity.StatePatch{SavedForLater: boolPtr(true)}))

	second := state.NewStore(blob, 10, nil)
	require.NoError(t, second.Hydrate(ctx))

	st, ok := second.Get("k1")
	require.True(t, ok)
	assert.True(t, st.SavedForLater)
}

func TestStore_HydrateMissingBlobIsEmpty(t *testing.T) {
	store := state.NewStore(memory.New(), 10, nil)
	require.NoError(t, store.Hydrate(context.Background()))
	assert.Equal(t, 0, store.Len())
}

func TestStore_PruningCap(t *testing.T) {
	const maxItems = 5
	store := state.NewStore(memory.New(), maxItems, nil)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		key := fmt.Sprintf("k%02d", i)
		require.NoError(t, store.Put(ctx, key, entity.StatePatch{Read: boolPtr(true)}))
		// Distinct write times so eviction order is deterministic.
		time.Sleep(2 * time.Millisecond)
	}

	assert.Equal(t, maxItems, store.Len())

	// The survivors are the most recently written keys.
	for i := 12 - maxItems; i < 12; i++ {
		_, ok := store.Get(fmt.Sprintf("k%02d", i))
		assert.True(t, ok, "expected k%02d to survive pruning", i)
	}
	_, ok := store.Get("k00")
	assert.False(t, ok, "oldest entry should be evicted")
}

func TestStore_QuotaHalveAndRetry(t *testing.T) {
	blob := memory.New()
	store := state.NewStore(blob, 8, nil)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, store.Put(ctx, fmt.Sprintf("k%d", i), entity.StatePatch{Read: boolPtr(true)}))
		time.Sleep(2 * time.Millisecond)
	}

	// Tighten the quota so the next write trips the degradation path.
	blob.MaxBytes = 700

	err := store.Put(ctx, "k8", entity.StatePatch{Read: boolPtr(true)})
	require.NoError(t, err, "halved retry should succeed")
	assert.LessOrEqual(t, store.Len(), 4, "store keeps at most maxItems/2 after degradation")

	_, ok := store.Get("k8")
	assert.True(t, ok, "the entry that triggered degradation is the newest and must survive")
}

func TestStore_QuotaStillFailingIsReportedNotFatal(t *testing.T) {
	blob := memory.New()
	blob.MaxBytes = 1 // nothing fits
	store := state.NewStore(blob, 8, nil)
	ctx := context.Background()

	err := store.Put(ctx, "k1", entity.StatePatch{Read: boolPtr(true)})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrQuotaExceeded)

	// In-memory entry survives so the session keeps working.
	st, ok := store.Get("k1")
	require.True(t, ok)
	assert.True(t, st.Read)
}

func TestStore_Clear(t *testing.T) {
	store := state.NewStore(memory.New(), 8, nil)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k1", entity.StatePatch{Read: boolPtr(true)}))
	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, store.Len())
}
