package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/energyinsights/backend/internal/diag"
	"github.com/energyinsights/backend/internal/server/handler"
	"github.com/energyinsights/backend/internal/service"
	"github.com/energyinsights/backend/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := synth.New(synth.PCGFactory(), func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	})

	handlers := Handlers{
		Greeting: handler.NewGreetingHandler(),
		Lookup:   handler.NewLookupHandler(service.NewLookupService(s, logger), logger),
		Diag:     handler.NewDiagHandler(diag.NewProbe(nil, nil, false, false, logger)),
	}

	srv := NewServer(Config{Port: 0}, handlers, nil, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, v any) *http.Response {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
	return resp
}

func TestRootEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, ts, "/", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello from the Energy Insights backend!", body["message"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestUnknownPathIs404(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLookupEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Query   string `json:"query"`
		Count   int    `json:"count"`
		Results []struct {
			ID     string `json:"id"`
			Region string `json:"region"`
		} `json:"results"`
	}

	resp := getJSON(t, ts, "/api/oil/lookup?q=crude", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "crude", body.Query)
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "brent", body.Results[0].ID)
	assert.Equal(t, "wti", body.Results[1].ID)
}

func TestDiagEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	resp := getJSON(t, ts, "/test", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "✅ Running", body["backend"])
	assert.Equal(t, "❌ Not Configured", body["database"])
	assert.Equal(t, "❌ Not Set", body["database_url"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/oil/lookup", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "X-Custom")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://dashboard.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "X-Custom", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestCORSSimpleRequestEchoesOrigin(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/hello", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsHonored(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/hello", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-abc-123")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-abc-123", resp.Header.Get("X-Request-ID"))
}
