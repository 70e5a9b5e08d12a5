package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/codenough/news-feed-app/internal/usecase/fetch"
)

// ReaderService is the slice of the reader facade the HTTP layer needs.
type ReaderService interface {
	Refresh(ctx context.Context) (fetch.Status, error)
	Status() (time.Time, fetch.Status, int)
}

// HealthResponse is the JSON body of the health endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus reports one health check item.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports process liveness and content freshness.
type HealthHandler struct {
	Reader  ReaderService
	Version string
}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lastRefresh, status, articles := h.Reader.Status()

	contentCheck := CheckStatus{
		Status: "healthy",
		Details: map[string]any{
			"articles":    articles,
			"last_status": string(status),
		},
	}
	if !lastRefresh.IsZero() {
		contentCheck.Details["last_refresh"] = lastRefresh.UTC().Format(time.RFC3339)
	}
	if status == fetch.StatusError {
		// Serving stale content is still serving; report degraded, not down.
		contentCheck.Status = "degraded"
		contentCheck.Message = "last refresh failed for all sources"
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]CheckStatus{"content": contentCheck},
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
