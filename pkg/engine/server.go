package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getmockd/mockdir/pkg/config"
	"github.com/getmockd/mockdir/pkg/logging"
	"github.com/getmockd/mockdir/pkg/metrics"
	"github.com/getmockd/mockdir/pkg/requestlog"
)

// shutdownTimeout bounds graceful shutdown. Streams still replaying after
// it are cut off.
const shutdownTimeout = 5 * time.Second

// Server runs the mock handler and the optional metrics listener.
type Server struct {
	cfg     *config.ServerConfiguration
	handler *Handler
	log     *slog.Logger

	recorder requestlog.Recorder

	mu            sync.Mutex
	running       bool
	startTime     time.Time
	httpServer    *http.Server
	metricsServer *http.Server
	addr          net.Addr
	metricsAddr   net.Addr
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server and its handler.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithServerRecorder replaces the default file recorder.
func WithServerRecorder(rec requestlog.Recorder) ServerOption {
	return func(s *Server) {
		s.recorder = rec
	}
}

// NewServer creates a server for cfg. Nothing listens until Start.
func NewServer(cfg *config.ServerConfiguration, opts ...ServerOption) *Server {
	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = NewHandler(cfg,
		WithHandlerLogger(s.log.With("component", "handler")),
		WithRecorder(s.recorder))
	return s
}

// Handler returns the dispatcher.
func (s *Server) Handler() *Handler {
	return s.handler
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfiguration {
	return s.cfg
}

// Start binds the listeners and serves in the background. Binding errors
// are returned synchronously.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	ln, err := net.Listen("tcp", listenAddr(s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	s.addr = ln.Addr()
	s.httpServer = &http.Server{
		Handler:           MetricsMiddleware(s.handler),
		ReadTimeout:       time.Duration(s.cfg.ReadTimeout) * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Duration(s.cfg.WriteTimeout) * time.Second,
	}
	s.log.Info("starting HTTP server", "addr", s.addr.String())
	go s.serve(s.httpServer, ln, "HTTP")

	if s.cfg.MetricsPort > 0 {
		mln, err := net.Listen("tcp", listenAddr(s.cfg.MetricsPort))
		if err != nil {
			_ = s.httpServer.Close()
			return fmt.Errorf("listening on metrics port %d: %w", s.cfg.MetricsPort, err)
		}
		s.metricsAddr = mln.Addr()
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", metrics.Handler())
		s.metricsServer = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		s.log.Info("starting metrics server", "addr", s.metricsAddr.String())
		go s.serve(s.metricsServer, mln, "metrics")
	}

	s.running = true
	s.startTime = time.Now()
	s.log.Info("server started",
		"port", s.Port(),
		"json_dir", s.cfg.JSONDir,
		"stream_dir", s.cfg.StreamDir,
		"stream_config", s.cfg.StreamConfig,
		"sse_delay", s.cfg.SSEDelay.String(),
	)
	return nil
}

func (s *Server) serve(srv *http.Server, ln net.Listener, name string) {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error(name+" server error", "error", err)
	}
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			_ = s.httpServer.Close()
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}

	s.running = false
	s.log.Info("server stopped", "uptime", time.Since(s.startTime).Round(time.Second).String())
	return errors.Join(errs...)
}

// IsRunning reports whether the server has been started and not stopped.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Port returns the bound HTTP port, which differs from the configured
// port when that is 0.
func (s *Server) Port() int {
	return portOf(s.addr)
}

// MetricsPort returns the bound metrics port, or 0 when disabled.
func (s *Server) MetricsPort() int {
	return portOf(s.metricsAddr)
}

func listenAddr(port int) string {
	return ":" + strconv.Itoa(port)
}

func portOf(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}
