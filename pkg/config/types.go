package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfiguration holds every runtime setting of the mock server.
type ServerConfiguration struct {
	// Port is the HTTP port for mock traffic.
	Port int `yaml:"port" json:"port"`

	// JSONDir is the root of the JSON mock tree. Request reports are
	// written under <JSONDir>/__requests__.
	JSONDir string `yaml:"jsonDir" json:"jsonDir"`

	// StreamDir is the root of the SSE stream spec tree.
	StreamDir string `yaml:"streamDir" json:"streamDir"`

	// StreamConfig is the stream endpoint registry file. It is optional
	// and re-read on every request.
	StreamConfig string `yaml:"streamConfig" json:"streamConfig"`

	// SSEDelay is the pause between two streamed lines.
	SSEDelay Duration `yaml:"sseDelay" json:"sseDelay"`

	// SSEStopOnDisconnect ends a replay when the client disconnects.
	SSEStopOnDisconnect bool `yaml:"sseStopOnDisconnect" json:"sseStopOnDisconnect"`

	// MaxBodyBytes caps the request body that is read and recorded.
	MaxBodyBytes int64 `yaml:"maxBodyBytes" json:"maxBodyBytes"`

	// ReadTimeout and WriteTimeout are in seconds. Zero disables them.
	ReadTimeout  int `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout int `yaml:"writeTimeout" json:"writeTimeout"`

	// MetricsPort serves /metrics on a separate listener (0 = disabled).
	MetricsPort int `yaml:"metricsPort" json:"metricsPort"`

	Log LogConfig `yaml:"log" json:"log"`

	// SetFields lists the keys explicitly present in a loaded source.
	// Used to merge booleans that are explicitly false.
	SetFields map[string]bool `yaml:"-" json:"-"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	// File, when set, also writes JSON logs to a rotated file.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Duration is a time.Duration that reads either a Go duration string
// ("250ms", "1s") or a bare integer number of milliseconds.
type Duration time.Duration

// ParseDuration parses s as a Go duration or an integer millisecond count.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Duration(time.Duration(ms) * time.Millisecond), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: use a value like 100ms or an integer number of milliseconds", s)
	}
	return Duration(d), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value returns the display form of the setting named key, one of Keys.
func (c *ServerConfiguration) Value(key string) string {
	switch key {
	case "port":
		return strconv.Itoa(c.Port)
	case "jsonDir":
		return c.JSONDir
	case "streamDir":
		return c.StreamDir
	case "streamConfig":
		return c.StreamConfig
	case "sseDelay":
		return c.SSEDelay.String()
	case "sseStopOnDisconnect":
		return strconv.FormatBool(c.SSEStopOnDisconnect)
	case "maxBodyBytes":
		return strconv.FormatInt(c.MaxBodyBytes, 10)
	case "readTimeout":
		return strconv.Itoa(c.ReadTimeout)
	case "writeTimeout":
		return strconv.Itoa(c.WriteTimeout)
	case "metricsPort":
		return strconv.Itoa(c.MetricsPort)
	case "log.level":
		return c.Log.Level
	case "log.format":
		return c.Log.Format
	case "log.file":
		return c.Log.File
	}
	return ""
}
