package requestlog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/getmockd/mockdir/internal/resolve"
	"github.com/getmockd/mockdir/pkg/logging"
	"github.com/getmockd/mockdir/pkg/metrics"
	"github.com/getmockd/mockdir/pkg/util"
)

// Layout constants for the report tree.
const (
	// DirName is the directory under the mock dir holding all reports.
	DirName = "__requests__"

	// RootDirName stands in for the empty path.
	RootDirName = "__root__"

	// TimeFormat is the UTC timestamp prefix of report filenames.
	TimeFormat = "20060102T150405.000Z"
)

// maxCollisions bounds the numeric suffix search for a free filename.
const maxCollisions = 1000

// Recorder persists request reports. Record never reports failure to the
// caller; implementations log and move on.
type Recorder interface {
	Record(report *Report)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(report *Report)

// Record calls f(report).
func (f RecorderFunc) Record(report *Report) { f(report) }

// Nop discards every report.
var Nop Recorder = RecorderFunc(func(*Report) {})

// FileRecorder writes each report to its own JSON file.
type FileRecorder struct {
	root string
	log  *slog.Logger
}

// RecorderOption configures a FileRecorder.
type RecorderOption func(*FileRecorder)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) RecorderOption {
	return func(f *FileRecorder) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFileRecorder creates a recorder writing under <mockDir>/__requests__.
func NewFileRecorder(mockDir string, opts ...RecorderOption) *FileRecorder {
	f := &FileRecorder{
		root: filepath.Join(mockDir, DirName),
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Root returns the directory holding all reports.
func (f *FileRecorder) Root() string {
	return f.root
}

// Record writes report to disk. Failures are logged at warn level.
func (f *FileRecorder) Record(report *Report) {
	path, err := f.Write(report)
	if err != nil {
		metrics.ReportsTotal.WithLabelValues(metrics.ResultError).Inc()
		f.log.Warn("failed to record request",
			"method", report.Method,
			"path", report.Pathname,
			"body", util.TruncateBody(report.Body.Raw, util.MaxLogBodySize),
			"error", err,
		)
		return
	}
	metrics.ReportsTotal.WithLabelValues(metrics.ResultOK).Inc()
	f.log.Debug("recorded request", "file", path)
}

// Write stores report and returns the file it was written to.
func (f *FileRecorder) Write(report *Report) (string, error) {
	dir := f.DirFor(report.Pathname)
	if !util.Within(f.root, dir) {
		return "", fmt.Errorf("report directory %s escapes %s", dir, f.root)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	data, err := report.MarshalIndent()
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	stem := report.Timestamp.UTC().Format(TimeFormat) + "-" + resolve.Sanitize(report.Method)
	for i := 0; i < maxCollisions; i++ {
		name := stem
		if i > 0 {
			name += "-" + strconv.Itoa(i)
		}
		path := filepath.Join(dir, name+resolve.ExtJSON)

		err := writeExclusive(path, data)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free report filename for %s in %s", stem, dir)
}

// DirFor returns the report directory for a URL path.
func (f *FileRecorder) DirFor(urlPath string) string {
	return filepath.Join(f.root, PathKey(urlPath))
}

// PathKey returns the report subdirectory for a URL path, relative to the
// report root, using '/' separators.
func PathKey(urlPath string) string {
	segs := resolve.Segments(urlPath)
	if len(segs) == 0 {
		return RootDirName
	}
	return strings.Join(segs, "/")
}

func writeExclusive(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return file.Close()
}
