package config

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied, except for keys listed in
// source.SetFields, which are applied even when zero.
func MergeConfig(target, source *ServerConfiguration, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Port != 0 || isSet(source, "port") {
		target.Port = source.Port
		target.Sources["port"] = sourceType
	}
	if source.JSONDir != "" {
		target.JSONDir = source.JSONDir
		target.Sources["jsonDir"] = sourceType
	}
	if source.StreamDir != "" {
		target.StreamDir = source.StreamDir
		target.Sources["streamDir"] = sourceType
	}
	// An explicitly empty streamConfig disables the registry file.
	if source.StreamConfig != "" || isSet(source, "streamConfig") {
		target.StreamConfig = source.StreamConfig
		target.Sources["streamConfig"] = sourceType
	}
	if source.SSEDelay != 0 || isSet(source, "sseDelay") {
		target.SSEDelay = source.SSEDelay
		target.Sources["sseDelay"] = sourceType
	}
	if source.SSEStopOnDisconnect || isSet(source, "sseStopOnDisconnect") {
		target.SSEStopOnDisconnect = source.SSEStopOnDisconnect
		target.Sources["sseStopOnDisconnect"] = sourceType
	}
	if source.MaxBodyBytes != 0 {
		target.MaxBodyBytes = source.MaxBodyBytes
		target.Sources["maxBodyBytes"] = sourceType
	}
	if source.ReadTimeout != 0 || isSet(source, "readTimeout") {
		target.ReadTimeout = source.ReadTimeout
		target.Sources["readTimeout"] = sourceType
	}
	if source.WriteTimeout != 0 || isSet(source, "writeTimeout") {
		target.WriteTimeout = source.WriteTimeout
		target.Sources["writeTimeout"] = sourceType
	}
	if source.MetricsPort != 0 || isSet(source, "metricsPort") {
		target.MetricsPort = source.MetricsPort
		target.Sources["metricsPort"] = sourceType
	}
	if source.Log.Level != "" {
		target.Log.Level = source.Log.Level
		target.Sources["log.level"] = sourceType
	}
	if source.Log.Format != "" {
		target.Log.Format = source.Log.Format
		target.Sources["log.format"] = sourceType
	}
	if source.Log.File != "" || isSet(source, "log.file") {
		target.Log.File = source.Log.File
		target.Sources["log.file"] = sourceType
	}
}

func isSet(cfg *ServerConfiguration, key string) bool {
	return cfg.SetFields != nil && cfg.SetFields[key]
}
