package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockdir/pkg/cli/internal/output"
)

const exampleStreamConfig = `{
  "endpoints": [
    "/api/chat/completions",
    "/api/events/**"
  ]
}
`

const exampleStreamSpec = `{
  "retry": 3000,
  "events": [
    { "event": "message", "id": 1, "data": { "text": "Hello" } },
    { "event": "message", "id": 2, "data": { "text": "from mockdir" } },
    { "event": "done", "data": "[DONE]" }
  ]
}
`

const exampleMock = `{
  "code": 0,
  "message": "ok",
  "data": {
    "name": "mockdir"
  }
}
`

// InitResult reports what init created.
type InitResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create the mock directories and example files",
	Long: `Create the JSON and stream mock directories, an example stream endpoint
registry and example mocks. Existing files are left untouched.

When dir is given, relative directories are created inside it.`,
	Example: `  mockdir init
  mockdir init ./fixtures`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	base := ""
	if len(args) == 1 {
		base = args[0]
	}
	at := func(p string) string {
		if base == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	res := &InitResult{Created: []string{}, Skipped: []string{}}
	for _, dir := range []string{at(cfg.JSONDir), at(cfg.StreamDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	files := []struct {
		path    string
		content string
	}{
		{at(filepath.Join(cfg.JSONDir, "index.json")), exampleMock},
		{at(filepath.Join(cfg.StreamDir, "chat", "completions.json")), exampleStreamSpec},
	}
	if cfg.StreamConfig != "" {
		files = append(files, struct {
			path    string
			content string
		}{at(cfg.StreamConfig), exampleStreamConfig})
	}

	for _, f := range files {
		created, err := writeIfMissing(f.path, f.content)
		if err != nil {
			return err
		}
		if created {
			res.Created = append(res.Created, f.path)
		} else {
			res.Skipped = append(res.Skipped, f.path)
		}
	}

	out := cmd.OutOrStdout()
	return printResult(out, res, func() {
		for _, p := range res.Created {
			fmt.Fprintf(out, "created %s\n", p)
		}
		for _, p := range res.Skipped {
			output.Warn(cmd.ErrOrStderr(), "%s already exists, left unchanged", p)
		}
		fmt.Fprintln(out, "\nRun 'mockdir serve' and try:")
		fmt.Fprintf(out, "  curl localhost:%d/\n", cfg.Port)
		fmt.Fprintf(out, "  curl -N localhost:%d/api/chat/completions\n", cfg.Port)
	})
}

func writeIfMissing(path, content string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, f.Close()
}
