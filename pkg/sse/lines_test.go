package sse

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLinesFromSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []string
	}{
		{
			name: "retry and full event",
			spec: `{"retry": 3000, "events": [{"event": "ping", "id": 1, "data": {"x": 1}}]}`,
			want: []string{"retry: 3000", "", "event: ping", "id: 1", "data: {\"x\":1}", ""},
		},
		{
			name: "absent fields omitted",
			spec: `{"events": [{"data": "hello"}]}`,
			want: []string{"data: hello", ""},
		},
		{
			name: "empty event still terminates record",
			spec: `{"events": [{}]}`,
			want: []string{""},
		},
		{
			name: "null event name skipped",
			spec: `{"events": [{"event": null, "data": "x"}]}`,
			want: []string{"data: x", ""},
		},
		{
			name: "empty event name skipped",
			spec: `{"events": [{"event": "", "data": "x"}]}`,
			want: []string{"data: x", ""},
		},
		{
			name: "null id kept",
			spec: `{"events": [{"id": null}]}`,
			want: []string{"id: null", ""},
		},
		{
			name: "string id and array data",
			spec: `{"events": [{"id": "abc", "data": [1, 2, {"b": 1, "a": 2}]}]}`,
			want: []string{"id: abc", "data: [1,2,{\"b\":1,\"a\":2}]", ""},
		},
		{
			name: "null data serialized",
			spec: `{"events": [{"data": null}]}`,
			want: []string{"data: null", ""},
		},
		{
			name: "non-numeric retry ignored",
			spec: `{"retry": "soon", "events": [{"data": "a"}]}`,
			want: []string{"data: a", ""},
		},
		{
			name: "non-object event",
			spec: `{"events": [42, {"data": "a"}]}`,
			want: []string{"", "data: a", ""},
		},
		{
			name: "no events",
			spec: `{"retry": 10}`,
			want: []string{"retry: 10", ""},
		},
		{
			name: "events not an array",
			spec: `{"events": {"data": "a"}}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinesFromSpec([]byte(tt.spec))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinesFromSpec_Invalid(t *testing.T) {
	_, err := LinesFromSpec([]byte(`{"events": [`))
	if !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestLinesFromRaw(t *testing.T) {
	got := LinesFromRaw([]byte("event: a\r\ndata: 1\n\ndata: 2\n"))
	want := []string{"event: a", "data: 1", "", "data: 2", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLines_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	rawPath := filepath.Join(dir, "chat.sse")
	if err := os.WriteFile(rawPath, []byte(`data: {"raw":true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Lines(rawPath)
	if err != nil {
		t.Fatalf("Lines(.sse): %v", err)
	}
	if !reflect.DeepEqual(got, []string{`data: {"raw":true}`}) {
		t.Errorf("raw lines = %q", got)
	}

	specPath := filepath.Join(dir, "chat.JSON")
	if err := os.WriteFile(specPath, []byte(`{"events":[{"data":"hi"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = Lines(specPath)
	if err != nil {
		t.Fatalf("Lines(.json): %v", err)
	}
	if !reflect.DeepEqual(got, []string{"data: hi", ""}) {
		t.Errorf("spec lines = %q", got)
	}
}

func TestLines_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Lines(filepath.Join(dir, "missing.sse")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Lines(bad); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		3000:  "3000",
		0:     "0",
		-5:    "-5",
		1.5:   "1.5",
		1e300: "1e+300",
	}
	for n, want := range tests {
		if got := formatNumber(n); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", n, got, want)
		}
	}
}
