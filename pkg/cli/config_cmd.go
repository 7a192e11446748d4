package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockdir/pkg/cli/internal/output"
	"github.com/getmockd/mockdir/pkg/config"
)

// ConfigEntry is one effective setting and where it came from.
type ConfigEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Show the effective configuration and the source of each value
(default, global, local, file, env or flag).`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	entries := make([]ConfigEntry, 0, len(config.Keys))
	for _, key := range config.Keys {
		source := cfg.Sources[key]
		if source == "" {
			source = config.SourceDefault
		}
		entries = append(entries, ConfigEntry{Key: key, Value: cfg.Value(key), Source: source})
	}

	out := cmd.OutOrStdout()
	return printResult(out, entries, func() {
		tw := output.Table(out)
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Value, e.Source)
		}
		_ = tw.Flush()
	})
}
