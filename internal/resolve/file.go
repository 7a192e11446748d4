package resolve

import (
	"os"
	"path/filepath"
)

// File extensions recognised by the resolvers.
const (
	ExtJSON = ".json"
	ExtSSE  = ".sse"
)

// Dir returns the directory a segment sequence resolves into under baseDir.
func Dir(baseDir string, segs []string) string {
	dir, _ := split(segs)
	if dir == "" {
		return baseDir
	}
	return filepath.Join(baseDir, dir)
}

// MockFile returns the JSON mock file for segs under baseDir.
// It never touches the filesystem.
func MockFile(baseDir string, segs []string) string {
	_, name := split(segs)
	return filepath.Join(Dir(baseDir, segs), name+ExtJSON)
}

// StreamFile returns the stream spec file for segs under baseDir.
// An existing .sse file wins over an existing .json file. When neither
// exists the .sse path is returned so callers can report where the file
// was expected.
func StreamFile(baseDir string, segs []string) string {
	sse, js := StreamCandidates(baseDir, segs)
	if fileExists(sse) {
		return sse
	}
	if fileExists(js) {
		return js
	}
	return sse
}

// StreamCandidates returns both candidate paths in preference order.
func StreamCandidates(baseDir string, segs []string) (ssePath, jsonPath string) {
	_, name := split(segs)
	dir := Dir(baseDir, segs)
	return filepath.Join(dir, name+ExtSSE), filepath.Join(dir, name+ExtJSON)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
