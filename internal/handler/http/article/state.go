package article

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/handler/http/respond"
	"github.com/codenough/news-feed-app/internal/observability/logging"
)

// StateHandler applies user-state mutations to a single article.
type StateHandler struct {
	Svc    Service
	Logger *slog.Logger
}

func (h StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	key := r.PathValue("key")
	if key == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("article key is required"))
		return
	}

	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	patch := req.Patch()
	if patch.IsZero() {
		respond.Error(w, http.StatusBadRequest, errors.New("at least one state field is required"))
		return
	}

	if err := h.Svc.MutateState(ctx, key, patch); err != nil {
		if errors.Is(err, entity.ErrArticleNotFound) {
			respond.Error(w, http.StatusNotFound, err)
			return
		}
		logger.Error("state mutation failed",
			slog.String("key", key),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	a, err := h.Svc.Article(key)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("article state updated", slog.String("key", key))
	respond.JSON(w, http.StatusOK, FromEntity(a))
}
