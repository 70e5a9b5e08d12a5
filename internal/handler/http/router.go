package http

import (
	"log/slog"
	"net/http"

	"github.com/codenough/news-feed-app/internal/handler/http/article"
	"github.com/codenough/news-feed-app/internal/handler/http/requestid"
	"github.com/codenough/news-feed-app/internal/handler/http/source"
	"github.com/codenough/news-feed-app/internal/observability/tracing"
)

// RouterDeps carries the services the API surface is built from.
type RouterDeps struct {
	Reader   ReaderService
	Articles article.Service
	Sources  source.Registry
	Logger   *slog.Logger
	Version  string
}

const maxRequestBody = 1 << 20 // 1MB

// NewRouter assembles all routes and the shared middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	article.Register(mux, deps.Articles, deps.Logger)
	source.Register(mux, deps.Sources, deps.Logger)
	mux.Handle("POST /api/refresh", RefreshHandler{Reader: deps.Reader, Logger: deps.Logger})
	mux.Handle("GET  /healthz", HealthHandler{Reader: deps.Reader, Version: deps.Version})

	return Chain(mux,
		Recover(deps.Logger),
		requestid.Middleware,
		tracing.Middleware,
		Logging(deps.Logger),
		Metrics(),
		LimitRequestBody(maxRequestBody),
	)
}
