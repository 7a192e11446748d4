package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockdir/pkg/cli/internal/output"
	"github.com/getmockd/mockdir/pkg/requestlog"
)

var requestsLimit int

var requestsCmd = &cobra.Command{
	Use:   "requests [path]",
	Short: "List recorded requests, newest first",
	Long: `List the request reports recorded under <jsonDir>/__requests__.

With a path, only reports for that exact request path are listed.`,
	Example: `  mockdir requests
  mockdir requests /api/users --limit 5
  mockdir requests --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRequests,
}

func init() {
	requestsCmd.Flags().IntVarP(&requestsLimit, "limit", "n", 20, "Maximum number of reports to show (0 = all)")
	rootCmd.AddCommand(requestsCmd)
}

func runRequests(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := requestlog.ListOptions{Limit: requestsLimit}
	if len(args) == 1 {
		opts.Path = args[0]
	}
	reports, err := requestlog.List(cfg.JSONDir, opts)
	if err != nil {
		return err
	}
	if reports == nil {
		reports = []requestlog.Summary{}
	}

	out := cmd.OutOrStdout()
	return printResult(out, reports, func() {
		if len(reports) == 0 {
			fmt.Fprintln(out, "No recorded requests")
			return
		}
		tw := output.Table(out)
		fmt.Fprintln(tw, "TIME\tMETHOD\tPATH\tFILE")
		for _, r := range reports {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				r.Timestamp.Local().Format(time.DateTime), r.Method, r.Pathname, r.File)
		}
		_ = tw.Flush()
	})
}
