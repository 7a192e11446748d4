package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request kinds used as the "kind" label.
const (
	KindMock   = "mock"
	KindStream = "stream"
	KindHealth = "health"
)

// Report write results used as the "result" label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Registry holds every mockdir collector.
var Registry = prometheus.NewRegistry()

var (
	// RequestsTotal counts handled requests by kind and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockdir_requests_total",
			Help: "Requests handled",
		},
		[]string{"kind", "status"},
	)

	// RequestDuration records request handling time in seconds by kind.
	// Stream requests include the whole replay.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mockdir_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// StreamsActive tracks SSE streams currently being replayed.
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mockdir_streams_active",
			Help: "Active SSE streams",
		},
	)

	// StreamLinesSent counts SSE lines written to clients.
	StreamLinesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mockdir_stream_lines_sent_total",
			Help: "SSE lines sent",
		},
	)

	// StubsCreated counts default mock files created on first access.
	StubsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mockdir_stubs_created_total",
			Help: "Stub mock files created",
		},
	)

	// ReportsTotal counts request report writes by result.
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mockdir_request_reports_total",
			Help: "Request report writes",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestsTotal,
		RequestDuration,
		StreamsActive,
		StreamLinesSent,
		StubsCreated,
		ReportsTotal,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// StatusClass turns 200 into "2xx", 404 into "4xx" and so on.
func StatusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

// ObserveRequest records one finished request.
func ObserveRequest(kind string, status int, start time.Time) {
	RequestsTotal.WithLabelValues(kind, StatusClass(status)).Inc()
	RequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
