package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzysystem/finance/internal/config"
	"github.com/fuzzysystem/finance/internal/di"
	testingpkg "github.com/fuzzysystem/finance/internal/testing"
)

func newTestServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DataDir:              dir,
		Port:                 8050,
		ForecastSource:       testingpkg.WriteFile(t, dir, "forecast.csv", testingpkg.ForecastCSV),
		ForecastDateLayout:   "2006-01-02",
		ColumnSeparator:      "_",
		OptimizationSource:   testingpkg.WriteFile(t, dir, "optimization.json", testingpkg.OptimizationJSON),
		OptimizationMetadata: testingpkg.WriteFile(t, dir, "metadata.json", testingpkg.OptimizationMetadataJSON),
	}

	container, err := di.Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	return New(Config{Log: zerolog.Nop(), Port: cfg.Port, DevMode: true, Container: container}), cfg
}

func do(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec, body := do(t, s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestRoutesRegistered(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/forecast/tickers", http.StatusOK},
		{http.MethodGet, "/api/forecast/AAPL/series", http.StatusOK},
		{http.MethodGet, "/api/forecast/AAPL/accuracy", http.StatusOK},
		{http.MethodGet, "/api/forecast/NOPE/series", http.StatusNotFound},
		{http.MethodGet, "/api/optimization", http.StatusOK},
		{http.MethodGet, "/api/system/status", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, _ := do(t, s, tt.method, tt.path)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestSystemStatus(t *testing.T) {
	s, _ := newTestServer(t)
	rec, body := do(t, s, http.MethodGet, "/api/system/status")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "ok", body["status"])
	sess := body["session"].(map[string]interface{})
	assert.Equal(t, float64(3), sess["rows"])
	assert.Equal(t, float64(2), sess["tickers"])
	assert.Equal(t, true, sess["has_optimization"])
}

func TestReload(t *testing.T) {
	s, cfg := newTestServer(t)
	before := s.container.Sessions.Current().ID

	rec, body := do(t, s, http.MethodPost, "/api/session/reload")
	require.Equal(t, http.StatusOK, rec.Code)
	after := body["data"].(map[string]interface{})["id"]
	assert.NotEqual(t, before, after)
	assert.Equal(t, after, s.container.Sessions.Current().ID)

	testingpkg.WriteFile(t, cfg.DataDir, "forecast.csv", "broken")
	rec, body = do(t, s, http.MethodPost, "/api/session/reload")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, after, s.container.Sessions.Current().ID)
}
