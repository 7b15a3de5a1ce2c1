package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New("test")
	b := New("test")

	a.DatasetLoads.WithLabelValues("nav_timeseries", "ok").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.DatasetLoads.WithLabelValues("nav_timeseries", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DatasetLoads.WithLabelValues("nav_timeseries", "ok")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New("eventlens")
	m.StaleStepsDrop.WithLabelValues("event-nav").Add(2)
	m.ActiveSessions.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `eventlens_render_stale_steps_dropped_total{step="event-nav"} 2`))
	assert.True(t, strings.Contains(body, "eventlens_session_active 3"))
}

func TestDefaultNamespace(t *testing.T) {
	m := New("")
	m.UIEvents.WithLabelValues("hello").Inc()

	count, err := testutil.GatherAndCount(m.Registry(), "eventlens_session_ui_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
