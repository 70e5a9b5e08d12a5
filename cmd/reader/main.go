// Command reader runs the feed aggregation service: the scheduled refresh
// pipeline, the REST API, and the metrics and health listeners, all in one
// process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	hhttp "github.com/codenough/news-feed-app/internal/handler/http"
	"github.com/codenough/news-feed-app/internal/infra/fetcher"
	"github.com/codenough/news-feed-app/internal/infra/persistence/file"
	"github.com/codenough/news-feed-app/internal/infra/worker"
	"github.com/codenough/news-feed-app/internal/observability/logging"
	"github.com/codenough/news-feed-app/internal/usecase/feed"
	"github.com/codenough/news-feed-app/internal/usecase/fetch"
	"github.com/codenough/news-feed-app/internal/usecase/merge"
	"github.com/codenough/news-feed-app/internal/usecase/reader"
	"github.com/codenough/news-feed-app/internal/usecase/source"
	"github.com/codenough/news-feed-app/internal/usecase/state"
	"github.com/codenough/news-feed-app/pkg/config"
)

// appConfig holds the process-level settings that do not belong to any one
// component: listener ports and the data directory layout.
type appConfig struct {
	APIPort     int
	MetricsPort int

	DataDir       string
	StateMaxItems int
	StateMaxBytes int
}

func loadAppConfig() appConfig {
	return appConfig{
		APIPort:       config.GetEnvInt("API_PORT", 8080),
		MetricsPort:   config.GetEnvInt("METRICS_PORT", 9090),
		DataDir:       config.GetEnvString("DATA_DIR", "data"),
		StateMaxItems: config.GetEnvInt("STATE_MAX_ITEMS", state.DefaultMaxItems),
		StateMaxBytes: config.GetEnvInt("STATE_MAX_BYTES", 1<<20),
	}
}

func main() {
	// .env は開発時のみ存在する
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.Any("error", err))
	}

	logger := logging.NewLogger()

	appCfg := loadAppConfig()
	if err := os.MkdirAll(appCfg.DataDir, 0o755); err != nil {
		logger.Error("failed to create data directory",
			slog.String("dir", appCfg.DataDir), slog.Any("error", err))
		os.Exit(1)
	}

	workerCfg := worker.LoadConfigFromEnv(logger)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerCfg.CronSchedule),
		slog.String("timezone", workerCfg.Timezone),
		slog.Duration("refresh_timeout", workerCfg.RefreshTimeout),
		slog.Int("health_port", workerCfg.HealthPort))

	svc, registry := setupReader(logger, appCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Load(ctx); err != nil {
		logger.Error("failed to restore persisted state", slog.Any("error", err))
		os.Exit(1)
	}

	healthServer := worker.NewHealthServer(workerCfg.HealthPort, logger)
	scheduler, err := worker.NewScheduler(workerCfg, svc, healthServer, logger)
	if err != nil {
		logger.Error("failed to create refresh scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	apiHandler := hhttp.NewRouter(hhttp.RouterDeps{
		Reader:   svc,
		Articles: svc,
		Sources:  registry,
		Logger:   logger,
		Version:  getVersion(),
	})

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", promhttp.Handler())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serveHTTP(ctx, logger, "api", appCfg.APIPort, apiHandler)
	})
	g.Go(func() error {
		return serveHTTP(ctx, logger, "metrics", appCfg.MetricsPort, metricsMux)
	})
	g.Go(func() error {
		return healthServer.Start(ctx)
	})
	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("service terminated", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("service stopped")
}

// setupReader wires the full pipeline: transport, parser, enhancer,
// orchestrator, merge engine, and the persistence-backed reader facade.
// The registry is returned separately so the HTTP layer can mount the
// source admin endpoints on it.
func setupReader(logger *slog.Logger, appCfg appConfig) (*reader.Service, *source.Registry) {
	feedCfg := fetcher.FeedFetchConfigFromEnv()
	if err := feedCfg.Validate(); err != nil {
		logger.Warn("invalid feed fetch configuration, using defaults", slog.Any("error", err))
		feedCfg = fetcher.DefaultFeedFetchConfig()
	}
	transport := fetcher.NewFeedFetcher(feedCfg)

	contentCfg := fetcher.ContentFetchConfigFromEnv()
	if err := contentCfg.Validate(); err != nil {
		logger.Warn("invalid content fetch configuration, enhancement disabled", slog.Any("error", err))
		contentCfg = fetcher.DefaultContentFetchConfig()
		contentCfg.Enabled = false
	}

	var enhancer *fetch.Enhancer
	if contentCfg.Enabled {
		enhancer = fetch.NewEnhancer(
			fetcher.NewReadabilityFetcher(contentCfg),
			contentCfg.Threshold,
			contentCfg.MaxLength,
			logger,
		)
		logger.Info("content enhancement enabled",
			slog.Int("threshold", contentCfg.Threshold),
			slog.Duration("timeout", contentCfg.Timeout))
	} else {
		logger.Info("content enhancement disabled")
	}

	fetchSvc := fetch.NewService(
		transport,
		feed.NewParser(),
		enhancer,
		config.GetEnvInt("FETCH_MAX_CONCURRENT", 0),
		logger,
	)

	stateBlob := file.New(filepath.Join(appCfg.DataDir, "state.json"), appCfg.StateMaxBytes)
	states := state.NewStore(stateBlob, appCfg.StateMaxItems, logger)
	snapshot := state.NewSnapshot(file.New(filepath.Join(appCfg.DataDir, "articles.json"), 0))
	registry := source.NewRegistry(filepath.Join(appCfg.DataDir, "sources.yaml"), logger)
	engine := merge.NewEngine(states, logger)

	return reader.NewService(fetchSvc, engine, states, snapshot, registry, logger), registry
}

// serveHTTP runs one HTTP listener until the context is cancelled, then
// shuts it down gracefully.
func serveHTTP(ctx context.Context, logger *slog.Logger, name string, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("name", name), slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("%s server: %w", name, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s server shutdown: %w", name, err)
		}
		logger.Info("server stopped", slog.String("name", name))
		return nil
	}
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
