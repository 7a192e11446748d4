package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/mockdir/pkg/config"
)

// flagBinding maps a command-line flag to a configuration key.
type flagBinding struct {
	flag  string
	key   string
	apply func(cfg *config.ServerConfiguration) error
}

var sharedBindings = []flagBinding{
	{"json-dir", "jsonDir", func(cfg *config.ServerConfiguration) error {
		cfg.JSONDir = jsonDir
		return nil
	}},
	{"stream-dir", "streamDir", func(cfg *config.ServerConfiguration) error {
		cfg.StreamDir = streamDir
		return nil
	}},
	{"stream-config", "streamConfig", func(cfg *config.ServerConfiguration) error {
		cfg.StreamConfig = streamConfig
		return nil
	}},
}

// loadConfig resolves configuration from every layer, applying the changed
// flags of cmd last. extra adds command-specific bindings.
func loadConfig(cmd *cobra.Command, extra ...flagBinding) (*config.ServerConfiguration, error) {
	cfg, err := config.LoadAll(config.LoadOptions{ConfigFile: configFile})
	if err != nil {
		return nil, err
	}

	flagCfg := &config.ServerConfiguration{SetFields: make(map[string]bool)}
	fs := cmd.Flags()
	for _, b := range append(append([]flagBinding(nil), sharedBindings...), extra...) {
		if !fs.Changed(b.flag) {
			continue
		}
		if err := b.apply(flagCfg); err != nil {
			return nil, err
		}
		flagCfg.SetFields[b.key] = true
	}
	config.MergeConfig(cfg, flagCfg, config.SourceFlag)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
