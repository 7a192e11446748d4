// Package streamreg decides which request paths are served as SSE streams.
//
// A path streams when it is listed in the stream endpoint file or when it
// ends in "/stream". The endpoint file is a JSON array of paths, or an
// object with an "endpoints" array:
//
//	["/api/chat/completions", "/events/**"]
//	{"endpoints": ["/api/chat/completions"]}
//
// The file is read again on every call, so edits apply to the next request.
// A missing or malformed file counts as an empty list.
package streamreg

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getmockd/mockdir/pkg/logging"
	"github.com/tidwall/gjson"
)

// StreamSuffix marks a path as streaming without any registry entry.
const StreamSuffix = "/stream"

// Registry classifies request paths against the stream endpoint file.
type Registry struct {
	path string
	log  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report unreadable endpoint files.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// New returns a Registry backed by the endpoint file at path.
// An empty path disables the file and leaves only the suffix rule.
func New(path string, opts ...Option) *Registry {
	r := &Registry{path: path, log: logging.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the endpoint file location.
func (r *Registry) Path() string {
	return r.path
}

// IsStream reports whether urlPath should be answered with an SSE stream.
func (r *Registry) IsStream(urlPath string) bool {
	endpoints := r.Endpoints()
	for _, ep := range endpoints {
		if ep == urlPath {
			return true
		}
	}
	for _, ep := range endpoints {
		if isPattern(ep) {
			if ok, err := doublestar.Match(ep, urlPath); err == nil && ok {
				return true
			}
		}
	}
	return strings.HasSuffix(urlPath, StreamSuffix)
}

// Endpoints reads the endpoint file and returns its string entries in order.
// Any read or parse problem yields an empty list.
func (r *Registry) Endpoints() []string {
	if r.path == "" {
		return nil
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.log.Debug("stream endpoint file unreadable", "path", r.path, "error", err)
		}
		return nil
	}
	return parseEndpoints(data, r.log.With("path", r.path))
}

func parseEndpoints(data []byte, log *slog.Logger) []string {
	if !gjson.ValidBytes(data) {
		log.Debug("stream endpoint file is not valid JSON")
		return nil
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("endpoints")
	}
	if !list.IsArray() {
		log.Debug("stream endpoint file has no endpoint list")
		return nil
	}

	var endpoints []string
	list.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			endpoints = append(endpoints, v.Str)
		}
		return true
	})
	return endpoints
}

func isPattern(ep string) bool {
	return strings.ContainsAny(ep, "*?[{") && doublestar.ValidatePattern(ep)
}
