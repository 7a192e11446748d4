// Package metrics exposes Prometheus metrics for the mock server.
//
// Collectors live in a package-level Registry together with the Go runtime
// and process collectors, and are served by Handler in the Prometheus text
// exposition format.
//
//   - mockdir_requests_total: requests by kind (mock, stream, health) and status class
//   - mockdir_request_duration_seconds: request latency by kind
//   - mockdir_streams_active: SSE streams currently being replayed
//   - mockdir_stream_lines_sent_total: SSE lines written to clients
//   - mockdir_stubs_created_total: default mock files created on first access
//   - mockdir_request_reports_total: request report writes by result (ok, error)
//
// The metrics endpoint runs on its own listener so it never shadows a mock
// path; see engine.Server.
package metrics
