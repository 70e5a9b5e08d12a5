package logging

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codenough/news-feed-app/internal/handler/http/requestid"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "default log level (info)", logLevel: ""},
		{name: "debug log level", logLevel: "debug"},
		{name: "invalid log level defaults to info", logLevel: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.logLevel != "" {
				os.Setenv("LOG_LEVEL", tt.logLevel)
				defer os.Unsetenv("LOG_LEVEL")
			}

			logger := NewLogger()
			assert.NotNil(t, logger)
		})
	}
}

func TestNewTextLogger(t *testing.T) {
	logger := NewTextLogger()
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	base := slog.Default()

	t.Run("no request id returns same logger", func(t *testing.T) {
		logger := WithRequestID(context.Background(), base)
		assert.Same(t, base, logger)
	})

	t.Run("request id attaches field", func(t *testing.T) {
		ctx := requestid.WithRequestID(context.Background(), "req-123")
		logger := WithRequestID(ctx, base)
		assert.NotSame(t, base, logger)
	})
}

func TestWithFields(t *testing.T) {
	logger := WithFields(slog.Default(), map[string]interface{}{
		"source": "feed-a",
		"count":  3,
	})
	assert.NotNil(t, logger)
}

func TestLoggerContext(t *testing.T) {
	t.Run("missing logger falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("round trip through context", func(t *testing.T) {
		logger := NewTextLogger()
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})
}
