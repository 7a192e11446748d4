package resolve

import (
	"path"
	"strings"
)

// IndexName is the file name used when a path has no segments.
const IndexName = "index"

// Segments splits a URL path on '/' and returns the non-empty segments with
// every byte outside [a-zA-Z0-9._-] replaced by '_'. Dot segments are
// resolved first, so a path can never climb out of the base directory.
func Segments(urlPath string) []string {
	var segs []string
	for _, part := range strings.Split(path.Clean("/"+urlPath), "/") {
		if part == "" {
			continue
		}
		segs = append(segs, Sanitize(part))
	}
	return segs
}

// Sanitize replaces every byte outside [a-zA-Z0-9._-] with '_'.
func Sanitize(seg string) string {
	b := []byte(seg)
	for i, c := range b {
		if !isSafe(c) {
			b[i] = '_'
		}
	}
	return string(b)
}

func isSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '-':
		return true
	}
	return false
}

// split returns the target subdirectory (empty when absent) and file stem.
func split(segs []string) (dir, name string) {
	name = IndexName
	if n := len(segs); n > 0 {
		name = segs[n-1]
		if n > 1 {
			dir = segs[n-2]
		}
	}
	return dir, name
}
