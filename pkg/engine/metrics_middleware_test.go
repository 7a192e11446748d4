package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockdir/pkg/metrics"
	"github.com/getmockd/mockdir/pkg/requestlog"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetricsMiddleware_LabelsByKind(t *testing.T) {
	cfg := testConfig(t)
	h := MetricsMiddleware(NewHandler(cfg, WithRecorder(requestlog.Nop)))

	health := metrics.RequestsTotal.WithLabelValues(metrics.KindHealth, "2xx")
	streamErr := metrics.RequestsTotal.WithLabelValues(metrics.KindStream, "5xx")
	beforeHealth := counterValue(t, health)
	beforeStream := counterValue(t, streamErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing/stream", nil))

	assert.Equal(t, beforeHealth+1, counterValue(t, health))
	assert.Equal(t, beforeStream+1, counterValue(t, streamErr))
}

func TestMetricsResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newMetricsResponseWriter(rec)

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("x"))
	w.Flush()

	assert.Equal(t, http.StatusTeapot, w.statusCode)
	assert.True(t, rec.Flushed)
	assert.Equal(t, rec, w.Unwrap())
}

func TestSetKind_OutsideMiddleware(t *testing.T) {
	// Must not panic without the middleware's context slot.
	setKind(httptest.NewRequest(http.MethodGet, "/", nil), metrics.KindStream)
}
