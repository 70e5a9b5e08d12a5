package article

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/handler/http/respond"
	"github.com/codenough/news-feed-app/internal/observability/logging"
	"github.com/codenough/news-feed-app/internal/usecase/merge"
)

// Service is the slice of the reader facade the article handlers need.
type Service interface {
	Articles(f merge.Filter) []entity.Article
	Article(key string) (entity.Article, error)
	MutateState(ctx context.Context, key string, patch entity.StatePatch) error
}

const defaultListLimit = 100

// ListHandler serves the filtered article list, newest first.
type ListHandler struct {
	Svc    Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := merge.Filter{
		SourceName: q.Get("source"),
		Category:   q.Get("category"),
		Unread:     q.Get("unread") == "true",
		Bookmarked: q.Get("bookmarked") == "true",
		HideSkip:   q.Get("hide_skipped") == "true",
	}

	limit := defaultListLimit
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.Error(w, http.StatusBadRequest, errInvalidLimit)
			return
		}
		limit = parsed
	}

	articles := h.Svc.Articles(filter)

	// The canonical set is newest-first; asc reverses into a copy.
	if q.Get("sort") == "asc" {
		reversed := make([]entity.Article, len(articles))
		for i, a := range articles {
			reversed[len(articles)-1-i] = a
		}
		articles = reversed
	}

	if len(articles) > limit {
		articles = articles[:limit]
	}

	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, FromEntity(a))
	}

	logger := logging.WithRequestID(r.Context(), h.Logger)
	logger.Debug("article list served",
		slog.Int("count", len(dtos)),
		slog.String("source", filter.SourceName))

	respond.JSON(w, http.StatusOK, map[string]any{
		"articles": dtos,
		"count":    len(dtos),
	})
}
