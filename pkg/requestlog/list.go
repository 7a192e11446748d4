package requestlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"
)

// Summary describes one stored report.
type Summary struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	Pathname  string    `json:"pathname"`
	File      string    `json:"file"`
}

// ListOptions filters List results.
type ListOptions struct {
	// Path restricts results to reports for this exact URL path.
	Path string

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// List returns the reports stored under mockDir, newest first. A missing
// report directory yields no results and no error.
func List(mockDir string, opts ListOptions) ([]Summary, error) {
	root := filepath.Join(mockDir, DirName)
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	pattern := "**/*.json"
	if opts.Path != "" {
		pattern = path.Join(PathKey(opts.Path), "*.json")
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	summaries := make([]Summary, 0, len(matches))
	for _, rel := range matches {
		file := filepath.Join(root, filepath.FromSlash(rel))
		s, err := readSummary(file)
		if err != nil {
			continue
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Timestamp.Equal(summaries[j].Timestamp) {
			return summaries[i].File > summaries[j].File
		}
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})

	if opts.Limit > 0 && len(summaries) > opts.Limit {
		summaries = summaries[:opts.Limit]
	}
	return summaries, nil
}

func readSummary(file string) (Summary, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Summary{}, err
	}
	if !gjson.ValidBytes(data) {
		return Summary{}, fs.ErrInvalid
	}
	doc := gjson.ParseBytes(data)
	return Summary{
		ID:        doc.Get("id").String(),
		Timestamp: doc.Get("timestamp").Time(),
		Method:    doc.Get("method").String(),
		Pathname:  doc.Get("pathname").String(),
		File:      file,
	}, nil
}
