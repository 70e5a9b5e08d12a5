package responsewriter_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codenough/news-feed-app/internal/handler/http/responsewriter"
)

func TestWrap_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(201)
	n, err := w.Write([]byte("hello"))

	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 201, w.StatusCode())
	assert.Equal(t, 5, w.BytesWritten())
	assert.Equal(t, 201, rec.Code)
}

func TestWrap_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	_, _ = w.Write([]byte("body"))

	assert.Equal(t, 200, w.StatusCode())
}

func TestWrap_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := responsewriter.Wrap(rec)

	w.WriteHeader(404)
	w.WriteHeader(500)

	assert.Equal(t, 404, w.StatusCode())
	assert.Equal(t, 404, rec.Code)
}
