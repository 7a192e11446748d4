// Package engine serves the mock tree over HTTP.
//
// Handler is the dispatcher. For every request other than GET /health it
// records a report, then either replays an SSE stream (when the stream
// registry classifies the path as streaming) or returns the JSON mock for
// the path, creating a stub on first access.
//
//	GET /health            -> 200 "OK", not recorded
//	GET /chat/stream       -> <streamDir>/chat/stream.sse or .json, replayed
//	GET /api/users/list    -> <jsonDir>/users/list.json
//
// Server wraps Handler in an http.Server and optionally runs a second
// listener exposing Prometheus metrics.
//
// # Basic Usage
//
//	cfg, _ := config.LoadAll(config.LoadOptions{})
//	srv := engine.NewServer(cfg, engine.WithLogger(log))
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
package engine
