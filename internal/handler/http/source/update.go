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

// UpdateHandler modifies an existing feed source.
type UpdateHandler struct {
	Reg    Registry
	Logger *slog.Logger
}

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	id := r.PathValue("id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("source id is required"))
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	if req.Name != "" || req.URL != "" {
		if err := h.Reg.Update(id, req.Name, req.URL); err != nil {
			writeRegistryError(w, logger, err)
			return
		}
	}
	if req.Enabled != nil {
		if err := h.Reg.SetEnabled(id, *req.Enabled); err != nil {
			writeRegistryError(w, logger, err)
			return
		}
	}

	src, err := h.Reg.Get(id)
	if err != nil {
		writeRegistryError(w, logger, err)
		return
	}

	logger.Info("source updated", slog.String("id", id))
	respond.JSON(w, http.StatusOK, FromEntity(src))
}

func writeRegistryError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, entity.ErrSourceNotFound):
		respond.Error(w, http.StatusNotFound, err)
	case errors.Is(err, entity.ErrInvalidSource):
		respond.Error(w, http.StatusBadRequest, err)
	default:
		logger.Error("source registry operation failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
