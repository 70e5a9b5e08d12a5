package worker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probe(t *testing.T, h http.HandlerFunc, path string) (int, healthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthServer_Liveness(t *testing.T) {
	srv := NewHealthServer(9091, nil)

	code, body := probe(t, srv.handleLiveness, "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}

func TestHealthServer_Readiness(t *testing.T) {
	srv := NewHealthServer(9091, nil)

	code, body := probe(t, srv.handleReadiness, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", body.Status)

	srv.SetReady(true)
	code, body = probe(t, srv.handleReadiness, "/health/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body.Status)

	srv.SetReady(false)
	code, _ = probe(t, srv.handleReadiness, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
