package util

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		maxSize int
		want    string
	}{
		{"short string no truncation", "hello", 100, "hello"},
		{"exact length", "12345", 5, "12345"},
		{"one over", "123456", 5, "12345...(truncated)"},
		{"zero maxSize uses default", "hello", 0, "hello"},
		{"empty string", "", 10, ""},
		{"does not split runes", "aé", 2, "a...(truncated)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateBody(tt.data, tt.maxSize))
		})
	}
}

func TestTruncateBody_DefaultMaxSize(t *testing.T) {
	t.Parallel()

	data := strings.Repeat("x", MaxLogBodySize+100)
	result := TruncateBody(data, 0)
	assert.Len(t, result, MaxLogBodySize+len(truncatedSuffix))

	short := data[:MaxLogBodySize]
	assert.Equal(t, short, TruncateBody(short, 0))
}

func TestWithin(t *testing.T) {
	t.Parallel()

	base := filepath.Join("mocks", "json")
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"base itself", base, true},
		{"child file", filepath.Join(base, "users", "list.json"), true},
		{"dotted file name", filepath.Join(base, "..data.json"), true},
		{"parent", filepath.Join(base, ".."), false},
		{"sibling", filepath.Join("mocks", "stream", "x.sse"), false},
		{"escape after clean", filepath.Join(base, "a", "..", "..", "x.json"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Within(base, tt.target))
		})
	}
}
