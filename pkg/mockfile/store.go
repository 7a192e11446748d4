// Package mockfile serves JSON mock documents from a directory tree and
// creates a stub document the first time an unknown path is requested.
package mockfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/getmockd/mockdir/internal/resolve"
	"github.com/getmockd/mockdir/pkg/logging"
	"github.com/getmockd/mockdir/pkg/metrics"
)

// StubMessage is the message field of a freshly created stub.
const StubMessage = "..."

// ErrInvalidJSON indicates a mock file whose contents are not valid JSON.
var ErrInvalidJSON = errors.New("mockfile: invalid JSON")

// Store resolves mock files under a base directory.
type Store struct {
	dir string
	log *slog.Logger
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source used for stub timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir: dir,
		log: logging.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the base directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the mock file that serves segs.
func (s *Store) Path(segs []string) string {
	return resolve.MockFile(s.dir, segs)
}

// Load returns the compacted contents of the mock file for segs, creating
// a stub first when the file does not exist. Key order is preserved.
// The returned path is set even when err is non-nil.
func (s *Store) Load(segs []string) (body []byte, path string, err error) {
	path = s.Path(segs)

	if err := s.ensure(path); err != nil {
		return nil, path, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("reading mock file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, path, fmt.Errorf("%s: %w", path, ErrInvalidJSON)
	}
	return pretty.Ugly(data), path, nil
}

// ensure creates the stub at path if nothing is there yet. Concurrent
// first requests may both write; the stubs are equivalent.
func (s *Store) ensure(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking mock file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating mock directory: %w", err)
	}

	stub, err := Stub(s.now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, stub, 0o644); err != nil {
		return fmt.Errorf("writing stub: %w", err)
	}

	metrics.StubsCreated.Inc()
	s.log.Info("created stub mock", "file", path)
	return nil
}

// Stub builds the default mock document:
//
//	{"code": 0, "message": "...", "data": {}, "timestamp": <unix ms>}
//
// pretty-printed with two-space indentation.
func Stub(now time.Time) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(key string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, key, value)
	}
	set("code", 0)
	set("message", StubMessage)
	if err == nil {
		doc, err = sjson.SetRawBytes(doc, "data", []byte(`{}`))
	}
	set("timestamp", now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("building stub: %w", err)
	}
	return pretty.Pretty(doc), nil
}
