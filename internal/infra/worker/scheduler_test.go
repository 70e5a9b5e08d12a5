package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenough/news-feed-app/internal/usecase/fetch"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) Refresh(context.Context) (fetch.Status, error) {
	r.calls.Add(1)
	return fetch.StatusSuccess, nil
}

func TestNewScheduler_RejectsBadTimezone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Nowhere/City"

	_, err := NewScheduler(cfg, &countingRefresher{}, nil, nil)
	assert.Error(t, err)
}

func TestScheduler_RefreshOnStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RefreshOnStart = true

	refresher := &countingRefresher{}
	sched, err := NewScheduler(cfg, refresher, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() == 1
	}, 2*time.Second, 10*time.Millisecond, "startup refresh should run before the first tick")

	cancel()
	require.NoError(t, <-done)
}

func TestScheduler_MarksHealthReady(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RefreshOnStart = false

	health := NewHealthServer(cfg.HealthPort, nil)
	sched, err := NewScheduler(cfg, &countingRefresher{}, health, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return health.isReady.Load()
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
