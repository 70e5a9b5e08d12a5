package source

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codenough/news-feed-app/internal/handler/http/respond"
	"github.com/codenough/news-feed-app/internal/observability/logging"
)

// DeleteHandler removes a feed source.
type DeleteHandler struct {
	Reg    Registry
	Logger *slog.Logger
}

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	id := r.PathValue("id")
	if id == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("source id is required"))
		return
	}

	if err := h.Reg.Remove(id); err != nil {
		writeRegistryError(w, logger, err)
		return
	}

	logger.Info("source removed", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
