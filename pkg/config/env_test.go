package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codenough/news-feed-app/pkg/config"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "hello")
	assert.Equal(t, "hello", config.GetEnvString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", config.GetEnvString("TEST_STRING_UNSET", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "not-a-number")

	assert.Equal(t, 42, config.GetEnvInt("TEST_INT", 7))
	assert.Equal(t, 7, config.GetEnvInt("TEST_INT_BAD", 7))
	assert.Equal(t, 7, config.GetEnvInt("TEST_INT_UNSET", 7))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"True", true},
		{"0", false},
		{"false", false},
		{"F", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, config.GetEnvBool("TEST_BOOL", !tt.want))
		})
	}

	t.Setenv("TEST_BOOL", "maybe")
	assert.True(t, config.GetEnvBool("TEST_BOOL", true), "invalid value falls back to default")
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 90*time.Second, config.GetEnvDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, config.GetEnvDuration("TEST_DURATION_BAD", time.Minute))
	assert.Equal(t, time.Minute, config.GetEnvDuration("TEST_DURATION_UNSET", time.Minute))
}
