package http

import (
	"log/slog"
	"net/http"

	"github.com/codenough/news-feed-app/internal/handler/http/respond"
	"github.com/codenough/news-feed-app/internal/observability/logging"
	"github.com/codenough/news-feed-app/internal/usecase/fetch"
)

// RefreshHandler triggers an on-demand refresh cycle.
type RefreshHandler struct {
	Reader ReaderService
	Logger *slog.Logger
}

// RefreshResponse reports the outcome of a triggered refresh.
type RefreshResponse struct {
	Status   string `json:"status"`
	Articles int    `json:"articles"`
}

func (h RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	status, err := h.Reader.Refresh(ctx)
	if err != nil && status == fetch.StatusError {
		logger.Error("manual refresh failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusBadGateway, err)
		return
	}

	_, _, articles := h.Reader.Status()
	logger.Info("manual refresh completed",
		slog.String("status", string(status)),
		slog.Int("articles", articles))
	respond.JSON(w, http.StatusOK, RefreshResponse{
		Status:   string(status),
		Articles: articles,
	})
}
