// Package worker runs the scheduled refresh loop and its health endpoints.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/codenough/news-feed-app/pkg/config"
)

// Config controls the refresh scheduler.
type Config struct {
	// CronSchedule is the refresh schedule as a standard 5-field cron
	// expression, e.g. "*/30 * * * *".
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	Timezone string

	// RefreshTimeout bounds a single refresh cycle.
	RefreshTimeout time.Duration

	// RefreshOnStart triggers an immediate refresh before the first
	// scheduled run so the reader starts with current content.
	RefreshOnStart bool

	// HealthPort serves the liveness and readiness probes.
	HealthPort int
}

// DefaultConfig returns production defaults: refresh every 30 minutes in
// UTC, with a refresh on startup.
func DefaultConfig() Config {
	return Config{
		CronSchedule:   "*/30 * * * *",
		Timezone:       "UTC",
		RefreshTimeout: 10 * time.Minute,
		RefreshOnStart: true,
		HealthPort:     9091,
	}
}

// LoadConfigFromEnv loads the scheduler configuration from environment
// variables, falling back per-field to defaults on invalid values. It
// never fails: the worker must come up even with a broken environment.
//
// Environment variables:
//   - REFRESH_SCHEDULE: cron expression (default "*/30 * * * *")
//   - WORKER_TIMEZONE: IANA timezone (default "UTC")
//   - REFRESH_TIMEOUT: duration string (default "10m")
//   - REFRESH_ON_START: boolean (default true)
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := DefaultConfig()

	schedule := config.GetEnvString("REFRESH_SCHEDULE", cfg.CronSchedule)
	if err := validateCronSchedule(schedule); err != nil {
		logger.Warn("invalid refresh schedule, using default",
			slog.String("value", schedule),
			slog.String("default", cfg.CronSchedule),
			slog.Any("error", err))
	} else {
		cfg.CronSchedule = schedule
	}

	tz := config.GetEnvString("WORKER_TIMEZONE", cfg.Timezone)
	if _, err := time.LoadLocation(tz); err != nil {
		logger.Warn("invalid worker timezone, using default",
			slog.String("value", tz),
			slog.String("default", cfg.Timezone),
			slog.Any("error", err))
	} else {
		cfg.Timezone = tz
	}

	timeout := config.GetEnvDuration("REFRESH_TIMEOUT", cfg.RefreshTimeout)
	if timeout < time.Minute || timeout > 4*time.Hour {
		logger.Warn("refresh timeout out of range, using default",
			slog.Duration("value", timeout),
			slog.Duration("default", cfg.RefreshTimeout))
	} else {
		cfg.RefreshTimeout = timeout
	}

	cfg.RefreshOnStart = config.GetEnvBool("REFRESH_ON_START", cfg.RefreshOnStart)

	port := config.GetEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort)
	if port < 1024 || port > 65535 {
		logger.Warn("health port out of range, using default",
			slog.Int("value", port),
			slog.Int("default", cfg.HealthPort))
	} else {
		cfg.HealthPort = port
	}

	return cfg
}

// Validate checks the configuration before the scheduler starts.
func (c *Config) Validate() error {
	if err := validateCronSchedule(c.CronSchedule); err != nil {
		return fmt.Errorf("cron schedule: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.RefreshTimeout <= 0 {
		return fmt.Errorf("refresh timeout must be positive, got %v", c.RefreshTimeout)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be 1024-65535, got %d", c.HealthPort)
	}
	return nil
}

func validateCronSchedule(expr string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}
