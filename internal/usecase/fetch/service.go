// Package fetch coordinates concurrent retrieval and parsing of all
// registered feed sources.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/observability/metrics"
	"github.com/codenough/news-feed-app/internal/observability/tracing"
	"github.com/codenough/news-feed-app/internal/usecase/feed"
)

// TransportFetcher retrieves the raw document behind a feed URL.
type TransportFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Status summarizes one orchestrated fetch cycle.
type Status string

const (
	// StatusSuccess means every source yielded articles.
	StatusSuccess Status = "success"
	// StatusPartial means some sources failed while others succeeded.
	StatusPartial Status = "partial"
	// StatusError means no source yielded anything.
	StatusError Status = "error"
)

const defaultMaxConcurrent = 8

// Service fans fetch-and-parse work out across sources and joins the
// per-source results.
type Service struct {
	transport TransportFetcher
	parser    *feed.Parser
	enhancer  *Enhancer
	maxConc   int
	logger    *slog.Logger
}

// NewService creates a fetch orchestrator. enhancer may be nil to disable
// description enhancement. maxConcurrent <= 0 selects the default.
func NewService(transport TransportFetcher, parser *feed.Parser, enhancer *Enhancer, maxConcurrent int, logger *slog.Logger) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		transport: transport,
		parser:    parser,
		enhancer:  enhancer,
		maxConc:   maxConcurrent,
		logger:    logger,
	}
}

// FetchAll retrieves and parses every given source concurrently.
//
// One slow or failing source never blocks or aborts the others: each
// per-source error is absorbed into its FetchResult. Results are returned
// for all sources, in input order, after every source has completed. The
// returned status is success when no source errored (an empty but valid
// feed still counts as a success), partial on a mix of outcomes, and error
// when every source failed. An empty source list is a successful no-op.
func (s *Service) FetchAll(ctx context.Context, sources []*entity.Source) ([]entity.FetchResult, Status) {
	if len(sources) == 0 {
		return nil, StatusSuccess
	}

	ctx, span := tracing.GetTracer().Start(ctx, "fetch.FetchAll",
		trace.WithAttributes(attribute.Int("sources.count", len(sources))))
	defer span.End()

	results := make([]entity.FetchResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConc)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = s.fetchOne(gctx, src)
			return nil
		})
	}
	// ワーカーはエラーを返さないため待つだけ
	_ = g.Wait()

	var succeeded, failed int
	for i := range results {
		if results[i].Err != nil {
			failed++
		} else {
			succeeded++
		}
	}

	status := StatusSuccess
	switch {
	case failed == 0:
	case succeeded == 0:
		status = StatusError
	default:
		status = StatusPartial
	}

	span.SetAttributes(
		attribute.Int("sources.succeeded", succeeded),
		attribute.Int("sources.failed", failed),
		attribute.String("fetch.status", string(status)),
	)
	s.logger.Info("fetch cycle completed",
		slog.Int("sources", len(sources)),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed),
		slog.String("status", string(status)))

	return results, status
}

func (s *Service) fetchOne(ctx context.Context, src *entity.Source) entity.FetchResult {
	ctx, span := tracing.GetTracer().Start(ctx, "fetch.fetchOne",
		trace.WithAttributes(attribute.String("source.name", src.Name)))
	defer span.End()

	start := time.Now()
	result := entity.FetchResult{Source: src}

	body, err := s.transport.Fetch(ctx, src.FeedURL)
	if err != nil {
		result.Err = fmt.Errorf("fetch %s: %w", src.Name, err)
		metrics.RecordFeedFetch(src.Name, "transport_error", time.Since(start))
		s.logger.Warn("source fetch failed",
			slog.String("source", src.Name),
			slog.String("url", src.FeedURL),
			slog.Any("error", err))
		return result
	}

	articles, err := s.parser.Parse(body, src.Name)
	if err != nil {
		result.Err = fmt.Errorf("parse %s: %w", src.Name, err)
		metrics.RecordFeedFetch(src.Name, "parse_error", time.Since(start))
		s.logger.Warn("source parse failed",
			slog.String("source", src.Name),
			slog.Any("error", err))
		return result
	}

	if s.enhancer != nil {
		articles = s.enhancer.Enhance(ctx, articles)
	}

	result.Articles = articles
	metrics.RecordFeedFetch(src.Name, "success", time.Since(start))
	metrics.RecordArticlesParsed(src.Name, len(articles))
	return result
}

// Collect flattens successful results into one article slice and reports
// whether every source failed.
func Collect(results []entity.FetchResult) ([]entity.Article, error) {
	var (
		articles []entity.Article
		failures int
	)
	for i := range results {
		if results[i].Err != nil {
			failures++
			continue
		}
		articles = append(articles, results[i].Articles...)
	}
	if len(results) > 0 && failures == len(results) {
		return nil, entity.ErrAllSourcesFailed
	}
	return articles, nil
}
