package source

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/handler/http/respond"
	"github.com/codenough/news-feed-app/internal/observability/logging"
)

// CreateHandler registers a new feed source.
type CreateHandler struct {
	Reg    Registry
	Logger *slog.Logger
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	src := &entity.Source{
		Name:    req.Name,
		FeedURL: req.URL,
		Enabled: enabled,
	}
	if err := h.Reg.Add(src); err != nil {
		if errors.Is(err, entity.ErrInvalidSource) {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}
		logger.Error("source create failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("source created",
		slog.String("name", src.Name),
		slog.String("url", src.FeedURL))
	respond.JSON(w, http.StatusCreated, FromEntity(src))
}
