// Package requestlog captures inbound requests as JSON reports on disk so
// users can inspect what a client actually sent.
//
// This is distinct from operational logging (log/slog). Reports are written
// once and never read back by the server; the CLI lists them.
//
// # Layout
//
// A request to /api/users/42 with method POST lands in
//
//	<mockDir>/__requests__/api/users/42/20260301T120000.000Z-POST.json
//
// Requests to the root path go under __root__. Rapid repeats within the
// same millisecond get a -1, -2, ... suffix instead of overwriting.
//
// # Usage
//
//	rec := requestlog.NewFileRecorder(cfg.JSONDir, requestlog.WithLogger(log))
//	report := requestlog.NewReport(r, body, time.Now())
//	rec.Record(report)
package requestlog
