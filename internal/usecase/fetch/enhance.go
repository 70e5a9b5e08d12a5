package fetch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/codenough/news-feed-app/internal/domain/entity"
)

// ContentFetcher extracts readable article text from an article page.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Enhancer fills in thin article descriptions by fetching the article page
// itself. Best effort: failures leave the original description untouched.
type Enhancer struct {
	content     ContentFetcher
	minLength   int
	maxLength   int
	maxParallel int
	logger      *slog.Logger
}

const (
	defaultMinDescriptionLen = 80
	defaultMaxDescriptionLen = 500
	defaultEnhanceParallel   = 4
)

// NewEnhancer creates a description enhancer. Zero thresholds select the
// defaults.
func NewEnhancer(content ContentFetcher, minLength, maxLength int, logger *slog.Logger) *Enhancer {
	if minLength <= 0 {
		minLength = defaultMinDescriptionLen
	}
	if maxLength <= 0 {
		maxLength = defaultMaxDescriptionLen
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{
		content:     content,
		minLength:   minLength,
		maxLength:   maxLength,
		maxParallel: defaultEnhanceParallel,
		logger:      logger,
	}
}

// Enhance replaces descriptions shorter than the minimum threshold with
// text extracted from the article page, truncated to the maximum length.
func (e *Enhancer) Enhance(ctx context.Context, articles []entity.Article) []entity.Article {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxParallel)

	for i := range articles {
		if len([]rune(articles[i].Description)) >= e.minLength || articles[i].URL == "" {
			continue
		}
		i := i
		g.Go(func() error {
			text, err := e.content.FetchContent(gctx, articles[i].URL)
			if err != nil {
				e.logger.Debug("content enhancement skipped",
					slog.String("url", articles[i].URL),
					slog.Any("error", err))
				return nil
			}
			if text == "" {
				return nil
			}
			articles[i].Description = truncateRunes(text, e.maxLength)
			return nil
		})
	}
	_ = g.Wait()
	return articles
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
