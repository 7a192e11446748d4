package sse

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getmockd/mockdir/pkg/logging"
	"github.com/getmockd/mockdir/pkg/metrics"
)

// Sender writes stream lines to a client at a fixed interval.
type Sender struct {
	delay            time.Duration
	stopOnDisconnect bool
	log              *slog.Logger
}

// Option configures a Sender.
type Option func(*Sender)

// WithDelay sets the pause between lines. Zero or negative sends every line
// immediately.
func WithDelay(d time.Duration) Option {
	return func(s *Sender) { s.delay = d }
}

// WithStopOnDisconnect stops the replay as soon as the client goes away.
// By default the replay runs until every line has been written, and writes
// to a closed connection are dropped.
func WithStopOnDisconnect(stop bool) Option {
	return func(s *Sender) { s.stopOnDisconnect = stop }
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sender) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSender creates a Sender using DefaultDelay unless overridden.
func NewSender(opts ...Option) *Sender {
	s := &Sender{
		delay: DefaultDelay,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay returns the configured interval between lines.
func (s *Sender) Delay() time.Duration {
	return s.delay
}

// Send starts an event stream on w and writes lines one per tick, each
// followed by "\n". The stream opens with ConnectedComment. Send returns
// once every line has been written, or earlier when stop-on-disconnect is
// enabled and the request context ends.
//
// ErrFlusherNotSupported is returned before anything is written when w
// cannot flush.
func (s *Sender) Send(w http.ResponseWriter, r *http.Request, lines []string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrFlusherNotSupported
	}

	h := w.Header()
	h.Set("Content-Type", ContentTypeEventStream)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	_, _ = io.WriteString(w, ConnectedComment)
	flusher.Flush()

	metrics.StreamsActive.Inc()
	defer metrics.StreamsActive.Dec()

	ctx := r.Context()
	if !s.stopOnDisconnect {
		ctx = context.WithoutCancel(ctx)
	}

	sent := s.replay(ctx, w, flusher, lines)
	s.log.Debug("stream finished",
		"path", r.URL.Path,
		"lines", len(lines),
		"sent", sent,
	)
	return nil
}

// replay writes lines and returns how many were written.
func (s *Sender) replay(ctx context.Context, w io.Writer, flusher http.Flusher, lines []string) int {
	if len(lines) == 0 {
		return 0
	}

	if s.delay <= 0 {
		for i, line := range lines {
			if ctx.Err() != nil {
				return i
			}
			s.writeLine(w, flusher, line)
		}
		return len(lines)
	}

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i, line := range lines {
		select {
		case <-ctx.Done():
			return i
		case <-ticker.C:
		}
		s.writeLine(w, flusher, line)
	}
	return len(lines)
}

// writeLine ignores write errors; a gone client does not end the replay
// unless stop-on-disconnect is set.
func (s *Sender) writeLine(w io.Writer, flusher http.Flusher, line string) {
	_, _ = io.WriteString(w, line+"\n")
	flusher.Flush()
	metrics.StreamLinesSent.Inc()
}
