package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockdir/internal/resolve"
	"github.com/getmockd/mockdir/pkg/requestlog"
	"github.com/getmockd/mockdir/pkg/streamreg"
)

// ResolveResult describes how a request path maps onto the mock tree.
type ResolveResult struct {
	Path       string   `json:"path"`
	Segments   []string `json:"segments"`
	Streaming  bool     `json:"streaming"`
	MockFile   string   `json:"mockFile"`
	StreamFile string   `json:"streamFile"`
	ReportDir  string   `json:"reportDir"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Show which files serve a request path",
	Example: `  mockdir resolve /api/users/list
  mockdir resolve /api/chat/stream --json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	urlPath := args[0]
	segs := resolve.Segments(urlPath)
	if segs == nil {
		segs = []string{}
	}
	res := ResolveResult{
		Path:       urlPath,
		Segments:   segs,
		Streaming:  streamreg.New(cfg.StreamConfig).IsStream(urlPath),
		MockFile:   resolve.MockFile(cfg.JSONDir, segs),
		StreamFile: resolve.StreamFile(cfg.StreamDir, segs),
		ReportDir:  requestlog.NewFileRecorder(cfg.JSONDir).DirFor(urlPath),
	}

	out := cmd.OutOrStdout()
	return printResult(out, res, func() {
		mode := "json"
		if res.Streaming {
			mode = "stream"
		}
		fmt.Fprintf(out, "path:        %s\n", res.Path)
		fmt.Fprintf(out, "mode:        %s\n", mode)
		fmt.Fprintf(out, "mock file:   %s\n", res.MockFile)
		fmt.Fprintf(out, "stream file: %s\n", res.StreamFile)
		fmt.Fprintf(out, "reports:     %s\n", res.ReportDir)
	})
}
