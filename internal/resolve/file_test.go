package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockFile(t *testing.T) {
	base := filepath.Join("mocks", "json")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "root uses index", path: "/", want: filepath.Join(base, "index.json")},
		{name: "single segment has no subdirectory", path: "/x", want: filepath.Join(base, "x.json")},
		{name: "two segments", path: "/foo/bar", want: filepath.Join(base, "foo", "bar.json")},
		{name: "earlier segments ignored", path: "/a/b/c", want: filepath.Join(base, "b", "c.json")},
		{name: "sanitized", path: "/a b/c", want: filepath.Join(base, "a_b", "c.json")},
		{name: "dot segments resolved first", path: "/a/b/..", want: filepath.Join(base, "a.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MockFile(base, Segments(tt.path)))
		})
	}
}

func TestMockFile_LastTwoSegmentsCollide(t *testing.T) {
	a := MockFile("base", Segments("/v1/users/list"))
	b := MockFile("base", Segments("/v2/admin/users/list"))
	assert.Equal(t, a, b)
}

func TestStreamFile(t *testing.T) {
	t.Run("missing files default to sse", func(t *testing.T) {
		base := t.TempDir()
		got := StreamFile(base, Segments("/chat/stream"))
		assert.Equal(t, filepath.Join(base, "chat", "stream.sse"), got)
	})

	t.Run("json used when only json exists", func(t *testing.T) {
		base := t.TempDir()
		writeFile(t, filepath.Join(base, "chat", "stream.json"))
		got := StreamFile(base, Segments("/chat/stream"))
		assert.Equal(t, filepath.Join(base, "chat", "stream.json"), got)
	})

	t.Run("sse preferred over json", func(t *testing.T) {
		base := t.TempDir()
		writeFile(t, filepath.Join(base, "chat", "stream.json"))
		writeFile(t, filepath.Join(base, "chat", "stream.sse"))
		got := StreamFile(base, Segments("/api/chat/stream"))
		assert.Equal(t, filepath.Join(base, "chat", "stream.sse"), got)
	})

	t.Run("directory named like a candidate is ignored", func(t *testing.T) {
		base := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(base, "events.sse"), 0o755))
		writeFile(t, filepath.Join(base, "events.json"))
		got := StreamFile(base, Segments("/events"))
		assert.Equal(t, filepath.Join(base, "events.json"), got)
	})
}

func TestDir(t *testing.T) {
	assert.Equal(t, "base", Dir("base", nil))
	assert.Equal(t, "base", Dir("base", []string{"only"}))
	assert.Equal(t, filepath.Join("base", "b"), Dir("base", []string{"a", "b", "c"}))
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}
