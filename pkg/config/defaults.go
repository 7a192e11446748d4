package config

import "time"

// Defaults.
const (
	DefaultPort         = 3000
	DefaultJSONDir      = "./mock-json"
	DefaultStreamDir    = "./mock-stream"
	DefaultStreamConfig = "./stream-endpoints.json"
	DefaultSSEDelay     = 100 * time.Millisecond
	DefaultMaxBodyBytes = 10 << 20
	DefaultReadTimeout  = 30
	// DefaultWriteTimeout is 0 because streams may run for a long time.
	DefaultWriteTimeout = 0
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// NewDefault creates a ServerConfiguration with default values.
func NewDefault() *ServerConfiguration {
	cfg := &ServerConfiguration{
		Port:         DefaultPort,
		JSONDir:      DefaultJSONDir,
		StreamDir:    DefaultStreamDir,
		StreamConfig: DefaultStreamConfig,
		SSEDelay:     Duration(DefaultSSEDelay),
		MaxBodyBytes: DefaultMaxBodyBytes,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Sources: make(map[string]string),
	}

	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// Keys lists every configuration key in display order.
var Keys = []string{
	"port",
	"jsonDir",
	"streamDir",
	"streamConfig",
	"sseDelay",
	"sseStopOnDisconnect",
	"maxBodyBytes",
	"readTimeout",
	"writeTimeout",
	"metricsPort",
	"log.level",
	"log.format",
	"log.file",
}
