package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveGeneration("ok", time.Second)
	m.CacheLookup("hit")
	m.DroppedPOIs(3)
	m.PlannerEdit("reorder", "ok")
	m.StreamClients(1)
}

func TestCollectors(t *testing.T) {
	m := New()
	m.ObserveGeneration("ok", 20*time.Millisecond)
	m.ObserveGeneration("not_found", time.Millisecond)
	m.CacheLookup("miss")
	m.DroppedPOIs(4)
	m.DroppedPOIs(0)
	m.PlannerEdit("update_time", "invalid")
	m.StreamClients(2)
	m.StreamClients(-1)

	require.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.droppedPOIs))
	require.Equal(t, 1.0, testutil.ToFloat64(m.plannerEdits.WithLabelValues("update_time", "invalid")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.streamClients))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.CacheLookup("hit")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `trafella_itinerary_cache_lookups_total{result="hit"} 1`))
}
