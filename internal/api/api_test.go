package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/eventlens/internal/api/handlers"
	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dashboard"
	"github.com/wonny/eventlens/internal/dataset/datasettest"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

func newTestApp(t *testing.T, omit ...contracts.DatasetName) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Data.Dir = datasettest.WriteDir(t, omit...)

	app := NewApp(cfg, logger.Nop(), metrics.New(""))
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestApp(t)

	resp := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestIndex_ShellHasEveryTarget(t *testing.T) {
	srv := newTestApp(t)

	resp := get(t, srv, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	for _, target := range dashboard.AllTargets() {
		assert.Equal(t, 1, doc.Find("#"+target).Length(), "target %s", target)
	}
}

func TestDatasets_ReportsMissingFile(t *testing.T) {
	srv := newTestApp(t, contracts.DatasetHoldingPeriod)

	resp := get(t, srv, "/api/datasets")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.DatasetsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, len(contracts.DatasetNames()), body.Total)
	assert.Equal(t, body.Total-1, body.Available)
	for _, st := range body.Datasets {
		if st.Name == contracts.DatasetHoldingPeriod {
			assert.False(t, st.Available)
			assert.NotEmpty(t, st.Error)
		} else {
			assert.True(t, st.Available, st.Name)
		}
	}
}

func TestMedals(t *testing.T) {
	srv := newTestApp(t)

	resp := get(t, srv, "/api/rankings/medals")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []handlers.MedalRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Score, rows[i].Score)
	}
}

func TestMedals_Unavailable(t *testing.T) {
	srv := newTestApp(t, contracts.DatasetEventType)

	resp := get(t, srv, "/api/rankings/medals")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestNavSnapshot(t *testing.T) {
	srv := newTestApp(t)

	tests := []struct {
		name   string
		query  string
		status int
		png    bool
	}{
		{"overall", "", http.StatusOK, true},
		{"event type", "?eventType=" + string(contracts.EventDividend), http.StatusOK, true},
		{"event type without nav", "?eventType=" + string(datasettest.EventWithoutNav), http.StatusNotFound, false},
		{"unknown event type", "?eventType=nope", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv, "/api/snapshots/nav.png"+tt.query)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.png {
				assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
				assert.True(t, strings.HasPrefix(string(body), "\x89PNG"))
			} else {
				assert.Contains(t, string(body), "error")
			}
		})
	}
}

func TestNavSnapshot_DatasetMissing(t *testing.T) {
	srv := newTestApp(t, contracts.DatasetNavTimeseries)

	resp := get(t, srv, "/api/snapshots/nav.png")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestApp(t)

	// a dataset load so the counters have samples
	get(t, srv, "/api/datasets")

	resp := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "eventlens_dataset_loads_total")
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = datasettest.WriteDir(t)
	cfg.MetricsEnabled = false

	srv := httptest.NewServer(NewApp(cfg, logger.Nop(), metrics.New("")).Router)
	defer srv.Close()

	resp := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
