package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"no args runs serve", nil, []string{"serve"}},
		{"flags run serve", []string{"--port", "4000"}, []string{"serve", "--port", "4000"}},
		{"short flag runs serve", []string{"-p", "4000"}, []string{"serve", "-p", "4000"}},
		{"help stays", []string{"--help"}, []string{"--help"}},
		{"version flag", []string{"--version"}, []string{"version"}},
		{"short version flag", []string{"-v"}, []string{"version"}},
		{"command untouched", []string{"init", "dir"}, []string{"init", "dir"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs(tt.in))
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "init", "requests", "resolve", "config", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestResolveCommand_JSON(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"resolve", "/api/users/list", "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		jsonOutput = false
	})

	require.NoError(t, rootCmd.Execute())

	doc := gjson.Parse(out.String())
	assert.Equal(t, filepath.Join("mock-json", "users", "list.json"), doc.Get("mockFile").String())
	assert.False(t, doc.Get("streaming").Bool())
	assert.Equal(t, int64(3), doc.Get("segments.#").Int())
	assert.Equal(t, "api", doc.Get("segments.0").String())
}
