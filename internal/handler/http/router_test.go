package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	handler "github.com/codenough/news-feed-app/internal/handler/http"
	"github.com/codenough/news-feed-app/internal/usecase/fetch"
	"github.com/codenough/news-feed-app/internal/usecase/merge"
)

type stubReader struct {
	status      fetch.Status
	refreshErr  error
	lastRefresh time.Time
	articles    []entity.Article
}

func (s *stubReader) Refresh(context.Context) (fetch.Status, error) {
	return s.status, s.refreshErr
}

func (s *stubReader) Status() (time.Time, fetch.Status, int) {
	return s.lastRefresh, s.status, len(s.articles)
}

func (s *stubReader) Articles(f merge.Filter) []entity.Article {
	return f.Apply(s.articles)
}

func (s *stubReader) Article(key string) (entity.Article, error) {
	for _, a := range s.articles {
		if a.IdentityKey() == key {
			return a, nil
		}
	}
	return entity.Article{}, entity.ErrArticleNotFound
}

func (s *stubReader) MutateState(context.Context, string, entity.StatePatch) error {
	return nil
}

type stubRegistry struct{}

func (stubRegistry) List() []*entity.Source                 { return nil }
func (stubRegistry) Get(string) (*entity.Source, error)     { return nil, entity.ErrSourceNotFound }
func (stubRegistry) Add(*entity.Source) error               { return nil }
func (stubRegistry) Update(string, string, string) error    { return nil }
func (stubRegistry) SetEnabled(string, bool) error          { return nil }
func (stubRegistry) Remove(string) error                    { return nil }

func newRouter(reader *stubReader) http.Handler {
	return handler.NewRouter(handler.RouterDeps{
		Reader:   reader,
		Articles: reader,
		Sources:  stubRegistry{},
		Logger:   slog.Default(),
		Version:  "test",
	})
}

func TestHealthEndpoint(t *testing.T) {
	reader := &stubReader{
		status:      fetch.StatusSuccess,
		lastRefresh: time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
		articles:    []entity.Article{{Title: "A", URL: "https://x.example.com/a"}},
	}
	router := newRouter(reader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["content"].Status)
	assert.Equal(t, "test", body.Version)
}

func TestHealthEndpoint_DegradedAfterFailedRefresh(t *testing.T) {
	reader := &stubReader{status: fetch.StatusError, lastRefresh: time.Now()}
	router := newRouter(reader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code, "stale content is degraded, not down")
	var body handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Checks["content"].Status)
}

func TestRefreshEndpoint(t *testing.T) {
	reader := &stubReader{
		status:   fetch.StatusPartial,
		articles: []entity.Article{{Title: "A", URL: "https://x.example.com/a"}},
	}
	router := newRouter(reader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "partial", body.Status)
	assert.Equal(t, 1, body.Articles)
}

func TestRefreshEndpoint_TotalFailure(t *testing.T) {
	reader := &stubReader{status: fetch.StatusError, refreshErr: errors.New("all sources failed")}
	router := newRouter(reader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := newRouter(&stubReader{status: fetch.StatusSuccess})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), "request ID middleware should stamp responses")
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newRouter(&stubReader{status: fetch.StatusSuccess})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
