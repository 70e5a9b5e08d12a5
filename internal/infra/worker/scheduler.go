package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/codenough/news-feed-app/internal/usecase/fetch"
)

// Refresher triggers one refresh cycle of the article set.
type Refresher interface {
	Refresh(ctx context.Context) (fetch.Status, error)
}

// Scheduler runs refresh cycles on a cron schedule. Cron skips a tick when
// the previous run is still in flight, so cycles never overlap.
type Scheduler struct {
	cfg    Config
	reader Refresher
	logger *slog.Logger
	cron   *cron.Cron
	health *HealthServer
}

// NewScheduler creates a refresh scheduler. The configuration must have
// been validated.
func NewScheduler(cfg Config, reader Refresher, health *HealthServer, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cfg:    cfg,
		reader: reader,
		logger: logger,
		health: health,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
	}, nil
}

// Run starts the schedule and blocks until the context is cancelled. With
// RefreshOnStart set, one refresh runs before the first scheduled tick.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.cfg.RefreshOnStart {
		s.runOnce(ctx)
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, func() {
		s.runOnce(ctx)
	}); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	s.cron.Start()
	if s.health != nil {
		s.health.SetReady(true)
	}
	s.logger.Info("refresh scheduler started",
		slog.String("schedule", s.cfg.CronSchedule),
		slog.String("timezone", s.cfg.Timezone))

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warn("refresh job did not finish before shutdown deadline")
	}
	s.logger.Info("refresh scheduler stopped")
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RefreshTimeout)
	defer cancel()

	start := time.Now()
	status, err := s.reader.Refresh(runCtx)
	if err != nil {
		s.logger.Error("scheduled refresh failed",
			slog.String("status", string(status)),
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err))
		return
	}
	s.logger.Info("scheduled refresh finished",
		slog.String("status", string(status)),
		slog.Duration("elapsed", time.Since(start)))
}
