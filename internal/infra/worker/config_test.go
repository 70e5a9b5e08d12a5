package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad cron", mutate: func(c *Config) { c.CronSchedule = "not a cron" }},
		{name: "six fields", mutate: func(c *Config) { c.CronSchedule = "0 0 * * * *" }},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{name: "zero timeout", mutate: func(c *Config) { c.RefreshTimeout = 0 }},
		{name: "privileged port", mutate: func(c *Config) { c.HealthPort = 80 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REFRESH_SCHEDULE", "15 * * * *")
	t.Setenv("WORKER_TIMEZONE", "Asia/Tokyo")
	t.Setenv("REFRESH_TIMEOUT", "20m")
	t.Setenv("REFRESH_ON_START", "false")
	t.Setenv("WORKER_HEALTH_PORT", "9999")

	cfg := LoadConfigFromEnv(nil)

	assert.Equal(t, "15 * * * *", cfg.CronSchedule)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, 20*time.Minute, cfg.RefreshTimeout)
	assert.False(t, cfg.RefreshOnStart)
	assert.Equal(t, 9999, cfg.HealthPort)
}

func TestLoadConfigFromEnv_FallsBackOnInvalid(t *testing.T) {
	t.Setenv("REFRESH_SCHEDULE", "whenever")
	t.Setenv("WORKER_TIMEZONE", "Nowhere/City")
	t.Setenv("REFRESH_TIMEOUT", "5s")
	t.Setenv("WORKER_HEALTH_PORT", "80")

	cfg := LoadConfigFromEnv(nil)
	def := DefaultConfig()

	assert.Equal(t, def.CronSchedule, cfg.CronSchedule, "invalid schedule falls back")
	assert.Equal(t, def.Timezone, cfg.Timezone, "invalid timezone falls back")
	assert.Equal(t, def.RefreshTimeout, cfg.RefreshTimeout, "out-of-range timeout falls back")
	assert.Equal(t, def.HealthPort, cfg.HealthPort, "privileged port falls back")
	assert.NoError(t, cfg.Validate(), "fail-open loading always yields a valid config")
}
