package article

import (
	"log/slog"
	"net/http"
)

// Register wires the article routes into the given mux.
func Register(mux *http.ServeMux, svc Service, logger *slog.Logger) {
	mux.Handle("GET  /api/articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET  /api/articles/{key}", GetHandler{Svc: svc})
	mux.Handle("POST /api/articles/{key}/state", StateHandler{Svc: svc, Logger: logger})
}
