package source

import (
	"log/slog"
	"net/http"
)

// Register wires the source management routes into the given mux.
func Register(mux *http.ServeMux, reg Registry, logger *slog.Logger) {
	mux.Handle("GET    /api/sources", ListHandler{Reg: reg})
	mux.Handle("POST   /api/sources", CreateHandler{Reg: reg, Logger: logger})
	mux.Handle("PATCH  /api/sources/{id}", UpdateHandler{Reg: reg, Logger: logger})
	mux.Handle("DELETE /api/sources/{id}", DeleteHandler{Reg: reg, Logger: logger})
}
