package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getmockd/mockdir/internal/resolve"
	"github.com/getmockd/mockdir/pkg/config"
	"github.com/getmockd/mockdir/pkg/httputil"
	"github.com/getmockd/mockdir/pkg/logging"
	"github.com/getmockd/mockdir/pkg/metrics"
	"github.com/getmockd/mockdir/pkg/mockfile"
	"github.com/getmockd/mockdir/pkg/requestlog"
	"github.com/getmockd/mockdir/pkg/sse"
	"github.com/getmockd/mockdir/pkg/streamreg"
	"github.com/getmockd/mockdir/pkg/util"
)

// HealthPath is answered directly and never recorded.
const HealthPath = "/health"

// Error codes returned in JSON error bodies.
const (
	ErrCodeStreamFailed = "stream_failed"
	ErrCodeMockFailed   = "mock_failed"
	ErrCodeBodyTooLarge = "body_too_large"
)

// Handler dispatches requests to the stream and JSON mock trees.
type Handler struct {
	streamDir string
	maxBody   int64

	registry *streamreg.Registry
	mocks    *mockfile.Store
	sender   *sse.Sender
	recorder requestlog.Recorder

	log *slog.Logger
	now func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the operational logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithRecorder replaces the default file recorder.
func WithRecorder(rec requestlog.Recorder) HandlerOption {
	return func(h *Handler) {
		if rec != nil {
			h.recorder = rec
		}
	}
}

// WithClock overrides the time source for reports and stubs.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler builds a dispatcher from cfg.
func NewHandler(cfg *config.ServerConfiguration, opts ...HandlerOption) *Handler {
	h := &Handler{
		streamDir: cfg.StreamDir,
		maxBody:   cfg.MaxBodyBytes,
		log:       logging.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.maxBody <= 0 {
		h.maxBody = config.DefaultMaxBodyBytes
	}

	h.registry = streamreg.New(cfg.StreamConfig,
		streamreg.WithLogger(h.log.With("component", "streamreg")))
	h.mocks = mockfile.New(cfg.JSONDir,
		mockfile.WithLogger(h.log.With("component", "mockfile")),
		mockfile.WithClock(h.now))
	h.sender = sse.NewSender(
		sse.WithDelay(cfg.SSEDelay.Std()),
		sse.WithStopOnDisconnect(cfg.SSEStopOnDisconnect),
		sse.WithLogger(h.log.With("component", "sse")))
	if h.recorder == nil {
		h.recorder = requestlog.NewFileRecorder(cfg.JSONDir,
			requestlog.WithLogger(h.log.With("component", "requestlog")))
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == HealthPath {
		setKind(r, metrics.KindHealth)
		h.handleHealth(w, r)
		return
	}

	body, tooLarge := h.readBody(w, r)

	report := requestlog.NewReport(r, body, h.now())
	report.Body.Truncated = tooLarge
	h.recorder.Record(report)

	if tooLarge {
		setKind(r, metrics.KindMock)
		h.log.Warn("request body too large",
			"path", r.URL.Path,
			"limit", h.maxBody,
			"body", util.TruncateBody(string(body), util.MaxLogBodySize))
		httputil.WriteError(w, http.StatusRequestEntityTooLarge, ErrCodeBodyTooLarge,
			fmt.Sprintf("Request body exceeds maximum allowed size of %d bytes", h.maxBody))
		return
	}

	segs := resolve.Segments(r.URL.Path)
	if h.registry.IsStream(r.URL.Path) {
		setKind(r, metrics.KindStream)
		h.serveStream(w, r, segs)
		return
	}
	setKind(r, metrics.KindMock)
	h.serveMock(w, r, segs)
}

// readBody drains the request body up to the configured limit. The second
// result reports that the limit was exceeded; body then holds what was read.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false
	}
	reader := http.MaxBytesReader(w, r.Body, h.maxBody)
	body, err := io.ReadAll(reader)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return body, true
		}
		h.log.Warn("failed to read request body", "path", r.URL.Path, "error", err)
	}
	return body, false
}

func (h *Handler) serveStream(w http.ResponseWriter, r *http.Request, segs []string) {
	file := resolve.StreamFile(h.streamDir, segs)

	lines, err := h.streamLines(file)
	if err != nil {
		h.streamFailed(w, r, file, err)
		return
	}

	if err := h.sender.Send(w, r, lines); err != nil {
		// Send only fails before writing anything.
		h.streamFailed(w, r, file, err)
	}
}

func (h *Handler) streamLines(file string) ([]string, error) {
	if !util.Within(h.streamDir, file) {
		return nil, fmt.Errorf("stream file %s is outside %s", file, h.streamDir)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("creating stream directory: %w", err)
	}
	return sse.Lines(file)
}

func (h *Handler) streamFailed(w http.ResponseWriter, r *http.Request, file string, err error) {
	h.log.Error("stream failed", "path", r.URL.Path, "file", file, "error", err)
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	httputil.WriteErrorWithHint(w, http.StatusInternalServerError, ErrCodeStreamFailed,
		err.Error(),
		fmt.Sprintf("Create %s%s or %s%s with the stream content", stem, resolve.ExtSSE, stem, resolve.ExtJSON),
		file)
}

func (h *Handler) serveMock(w http.ResponseWriter, r *http.Request, segs []string) {
	body, file, err := h.mocks.Load(segs)
	if err != nil {
		h.log.Error("mock failed", "path", r.URL.Path, "file", file, "error", err)
		httputil.WriteErrorWithHint(w, http.StatusInternalServerError, ErrCodeMockFailed,
			err.Error(),
			fmt.Sprintf("Check that %s contains valid JSON", file),
			file)
		return
	}

	h.log.Debug("serving mock", "path", r.URL.Path, "file", file)
	httputil.WriteRawJSON(w, http.StatusOK, body)
}
