package engine

import (
	"context"
	"net/http"
	"time"

	"github.com/getmockd/mockdir/pkg/metrics"
)

type kindKey struct{}

// setKind tells MetricsMiddleware how the request was dispatched. It is a
// no-op outside the middleware.
func setKind(r *http.Request, kind string) {
	if slot, ok := r.Context().Value(kindKey{}).(*string); ok {
		*slot = kind
	}
}

// metricsResponseWriter wraps http.ResponseWriter to capture the status code.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// newMetricsResponseWriter creates a new metricsResponseWriter.
func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter.
func (w *metricsResponseWriter) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *metricsResponseWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Flush forwards to the underlying writer. SSE replay depends on it.
func (w *metricsResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware wraps an http.Handler to record Prometheus request
// counts and durations, labelled by dispatch kind and status class.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		kind := metrics.KindMock
		r = r.WithContext(context.WithValue(r.Context(), kindKey{}, &kind))
		mrw := newMetricsResponseWriter(w)

		next.ServeHTTP(mrw, r)

		metrics.ObserveRequest(kind, mrw.statusCode, start)
	})
}
