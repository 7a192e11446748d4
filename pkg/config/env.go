package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvPort             = "MOCKDIR_PORT"
	EnvJSONDir          = "MOCKDIR_JSON_DIR"
	EnvStreamDir        = "MOCKDIR_STREAM_DIR"
	EnvStreamConfig     = "MOCKDIR_STREAM_CONFIG"
	EnvSSEDelay         = "MOCKDIR_SSE_DELAY"
	EnvStopOnDisconnect = "MOCKDIR_SSE_STOP_ON_DISCONNECT"
	EnvMaxBodyBytes     = "MOCKDIR_MAX_BODY_BYTES"
	EnvMetricsPort      = "MOCKDIR_METRICS_PORT"
	EnvLogLevel         = "MOCKDIR_LOG_LEVEL"
	EnvLogFormat        = "MOCKDIR_LOG_FORMAT"
	EnvLogFile          = "MOCKDIR_LOG_FILE"
	EnvConfig           = "MOCKDIR_CONFIG"
)

// LoadEnvConfig applies environment variables to cfg. Only variables that
// are set are applied; a malformed numeric value is an error.
func LoadEnvConfig(cfg *ServerConfiguration) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvPort, v, "an integer port")
		}
		cfg.Port = port
		cfg.Sources["port"] = SourceEnv
	}

	if v, ok := lookup(EnvJSONDir); ok {
		cfg.JSONDir = v
		cfg.Sources["jsonDir"] = SourceEnv
	}

	if v, ok := lookup(EnvStreamDir); ok {
		cfg.StreamDir = v
		cfg.Sources["streamDir"] = SourceEnv
	}

	// Set but empty disables the registry file.
	if v, ok := os.LookupEnv(EnvStreamConfig); ok {
		cfg.StreamConfig = strings.TrimSpace(v)
		cfg.Sources["streamConfig"] = SourceEnv
	}

	if v, ok := lookup(EnvSSEDelay); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSSEDelay, err)
		}
		cfg.SSEDelay = d
		cfg.Sources["sseDelay"] = SourceEnv
	}

	if v, ok := lookup(EnvStopOnDisconnect); ok {
		cfg.SSEStopOnDisconnect = parseBool(v)
		cfg.Sources["sseStopOnDisconnect"] = SourceEnv
	}

	if v, ok := lookup(EnvMaxBodyBytes); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError(EnvMaxBodyBytes, v, "an integer byte count")
		}
		cfg.MaxBodyBytes = n
		cfg.Sources["maxBodyBytes"] = SourceEnv
	}

	if v, ok := lookup(EnvMetricsPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvMetricsPort, v, "an integer port")
		}
		cfg.MetricsPort = port
		cfg.Sources["metricsPort"] = SourceEnv
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Log.Level = v
		cfg.Sources["log.level"] = SourceEnv
	}

	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Log.Format = v
		cfg.Sources["log.format"] = SourceEnv
	}

	if v, ok := lookup(EnvLogFile); ok {
		cfg.Log.File = v
		cfg.Sources["log.file"] = SourceEnv
	}

	return nil
}

func lookup(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func envError(name, value, want string) error {
	return fmt.Errorf("%s=%q: expected %s", name, value, want)
}
