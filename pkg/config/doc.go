// Package config provides the server configuration for mockdir and its
// layered loading.
//
// Values are resolved with the following precedence (highest first):
//
//  1. Command-line flags
//  2. Environment variables (MOCKDIR_*)
//  3. Explicit config file (--config or MOCKDIR_CONFIG)
//  4. Local config file (.mockdirrc.yaml in the current directory)
//  5. Global config file (<user config dir>/mockdir/config.yaml)
//  6. Defaults
//
// Every ServerConfiguration carries a Sources map recording which layer
// supplied each value, so `mockdir config` can explain the effective setup.
//
// Example .mockdirrc.yaml:
//
//	port: 3000
//	jsonDir: ./mock-json
//	streamDir: ./mock-stream
//	streamConfig: ./stream-endpoints.json
//	sseDelay: 100ms
//	log:
//	  level: debug
package config
