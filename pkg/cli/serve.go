package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockdir/pkg/config"
	"github.com/getmockd/mockdir/pkg/engine"
	"github.com/getmockd/mockdir/pkg/logging"
)

// serveFlags holds the serve-only flag values.
type serveFlags struct {
	port             int
	sseDelay         string
	stopOnDisconnect bool
	maxBodyBytes     int64
	metricsPort      int
	logLevel         string
	logFormat        string
	logFile          string
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock server (default command)",
	Long: `Start the mock server in the foreground. Stops on SIGINT or SIGTERM.

Request handling:
  GET /health                     200 "OK", not recorded
  paths in the stream registry    replayed as Server-Sent Events
  paths ending in /stream         replayed as Server-Sent Events
  everything else                 <jsonDir>/<dir>/<name>.json`,
	Example: `  # Start with defaults (port 3000)
  mockdir

  # Custom port and directories
  mockdir serve --port 4000 --json-dir ./fixtures/json --stream-dir ./fixtures/sse

  # Slow the stream down and stop it when the client goes away
  mockdir serve --sse-delay 500ms --stop-on-disconnect

  # Expose Prometheus metrics on :9090/metrics
  mockdir serve --metrics-port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.IntVarP(&serveFlagVals.port, "port", "p", config.DefaultPort, "HTTP port")
	f.StringVar(&serveFlagVals.sseDelay, "sse-delay", config.DefaultSSEDelay.String(), "Delay between SSE lines (duration or milliseconds)")
	f.BoolVar(&serveFlagVals.stopOnDisconnect, "stop-on-disconnect", false, "Stop replaying a stream when the client disconnects")
	f.Int64Var(&serveFlagVals.maxBodyBytes, "max-body-bytes", config.DefaultMaxBodyBytes, "Maximum request body size")
	f.IntVar(&serveFlagVals.metricsPort, "metrics-port", 0, "Serve Prometheus metrics on this port (0 = disabled)")
	f.StringVar(&serveFlagVals.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	f.StringVar(&serveFlagVals.logFormat, "log-format", config.DefaultLogFormat, "Log format (text, json)")
	f.StringVar(&serveFlagVals.logFile, "log-file", "", "Also write JSON logs to this rotated file")

	rootCmd.AddCommand(serveCmd)
}

var serveBindings = []flagBinding{
	{"port", "port", func(cfg *config.ServerConfiguration) error {
		cfg.Port = serveFlagVals.port
		return nil
	}},
	{"sse-delay", "sseDelay", func(cfg *config.ServerConfiguration) error {
		d, err := config.ParseDuration(serveFlagVals.sseDelay)
		if err != nil {
			return fmt.Errorf("--sse-delay: %w", err)
		}
		cfg.SSEDelay = d
		return nil
	}},
	{"stop-on-disconnect", "sseStopOnDisconnect", func(cfg *config.ServerConfiguration) error {
		cfg.SSEStopOnDisconnect = serveFlagVals.stopOnDisconnect
		return nil
	}},
	{"max-body-bytes", "maxBodyBytes", func(cfg *config.ServerConfiguration) error {
		cfg.MaxBodyBytes = serveFlagVals.maxBodyBytes
		return nil
	}},
	{"metrics-port", "metricsPort", func(cfg *config.ServerConfiguration) error {
		cfg.MetricsPort = serveFlagVals.metricsPort
		return nil
	}},
	{"log-level", "log.level", func(cfg *config.ServerConfiguration) error {
		cfg.Log.Level = serveFlagVals.logLevel
		return nil
	}},
	{"log-format", "log.format", func(cfg *config.ServerConfiguration) error {
		cfg.Log.Format = serveFlagVals.logFormat
		return nil
	}},
	{"log-file", "log.file", func(cfg *config.ServerConfiguration) error {
		cfg.Log.File = serveFlagVals.logFile
		return nil
	}},
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, serveBindings...)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
		File:   cfg.Log.File,
	})

	srv := engine.NewServer(cfg, engine.WithLogger(log))
	if err := srv.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printServeBanner(cmd, cfg, srv)

	<-ctx.Done()
	log.Info("shutting down")
	return srv.Stop()
}

func printServeBanner(cmd *cobra.Command, cfg *config.ServerConfiguration, srv *engine.Server) {
	out := cmd.OutOrStdout()
	info := map[string]any{
		"url":          fmt.Sprintf("http://localhost:%d", srv.Port()),
		"port":         srv.Port(),
		"jsonDir":      cfg.JSONDir,
		"streamDir":    cfg.StreamDir,
		"streamConfig": cfg.StreamConfig,
		"sseDelay":     cfg.SSEDelay.String(),
	}
	if p := srv.MetricsPort(); p > 0 {
		info["metricsUrl"] = fmt.Sprintf("http://localhost:%d/metrics", p)
	}
	_ = printResult(out, info, func() {
		fmt.Fprintf(out, "mockdir listening on http://localhost:%d\n", srv.Port())
		fmt.Fprintf(out, "  JSON mocks:    %s\n", cfg.JSONDir)
		fmt.Fprintf(out, "  SSE streams:   %s\n", cfg.StreamDir)
		fmt.Fprintf(out, "  Stream config: %s\n", displayPath(cfg.StreamConfig))
		fmt.Fprintf(out, "  SSE delay:     %s\n", cfg.SSEDelay)
		if p := srv.MetricsPort(); p > 0 {
			fmt.Fprintf(out, "  Metrics:       http://localhost:%d/metrics\n", p)
		}
		fmt.Fprintln(out, "Press Ctrl+C to stop")
	})
}

func displayPath(p string) string {
	if p == "" {
		return "(none)"
	}
	return p
}
