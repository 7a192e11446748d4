package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput   bool
	configFile   string
	jsonDir      string
	streamDir    string
	streamConfig string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mockdir",
	Short: "mockdir serves JSON and SSE mocks straight from a directory tree",
	Long: `mockdir is a local mock server for frontend and client development.

GET /a/b/c is answered with <jsonDir>/b/c.json, which is created with a stub
the first time it is requested. Paths listed in the stream config file, or
ending in /stream, replay <streamDir>/<dir>/<name>.sse (or .json) as
Server-Sent Events. Every request is recorded under <jsonDir>/__requests__.

Configuration comes from flags, MOCKDIR_* environment variables, a
.mockdirrc.yaml in the current directory or ~/.config/mockdir/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVarP(&configFile, "config", "c", "", "Config file (YAML)")
	pf.StringVar(&jsonDir, "json-dir", "", "JSON mock directory (default ./mock-json)")
	pf.StringVar(&streamDir, "stream-dir", "", "SSE stream directory (default ./mock-stream)")
	pf.StringVar(&streamConfig, "stream-config", "", "Stream endpoint registry file (default ./stream-endpoints.json)")
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main() int {
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Execute runs the CLI and exits on failure.
func Execute() {
	if code := Main(); code != 0 {
		os.Exit(code)
	}
}

// normalizeArgs makes serve the default command: no arguments, or a first
// argument that is a flag other than help or version, runs serve.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return []string{serveCmd.Name()}
	}
	first := args[0]
	if !strings.HasPrefix(first, "-") {
		return args
	}
	switch first {
	case "-h", "--help":
		return args
	case "-v", "--version":
		return []string{versionCmd.Name()}
	}
	return append([]string{serveCmd.Name()}, args...)
}
