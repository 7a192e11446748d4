package config

import (
	"fmt"
	"strings"
)

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

var validLogFormats = map[string]bool{"text": true, "json": true}

// Validate checks the configuration for errors.
func (c *ServerConfiguration) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return &ValidationError{Field: "port", Message: fmt.Sprintf("port %d is out of range (0-65535)", c.Port)}
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return &ValidationError{Field: "metricsPort", Message: fmt.Sprintf("metricsPort %d is out of range (0-65535)", c.MetricsPort)}
	}
	if c.MetricsPort != 0 && c.MetricsPort == c.Port {
		return &ValidationError{Field: "metricsPort", Message: "port and metricsPort cannot be the same"}
	}

	if strings.TrimSpace(c.JSONDir) == "" {
		return &ValidationError{Field: "jsonDir", Message: "jsonDir must not be empty"}
	}
	if strings.TrimSpace(c.StreamDir) == "" {
		return &ValidationError{Field: "streamDir", Message: "streamDir must not be empty"}
	}

	if c.SSEDelay < 0 {
		return &ValidationError{Field: "sseDelay", Message: fmt.Sprintf("sseDelay %s must not be negative", c.SSEDelay)}
	}
	if c.MaxBodyBytes <= 0 {
		return &ValidationError{Field: "maxBodyBytes", Message: fmt.Sprintf("maxBodyBytes %d must be positive", c.MaxBodyBytes)}
	}
	if c.ReadTimeout < 0 || c.ReadTimeout > 3600 {
		return &ValidationError{Field: "readTimeout", Message: fmt.Sprintf("readTimeout %d is out of range (0-3600)", c.ReadTimeout)}
	}
	if c.WriteTimeout < 0 || c.WriteTimeout > 3600 {
		return &ValidationError{Field: "writeTimeout", Message: fmt.Sprintf("writeTimeout %d is out of range (0-3600)", c.WriteTimeout)}
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		return &ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown log format %q (text or json)", c.Log.Format)}
	}
	return nil
}
