package sse

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Lines reads the stream spec at path and returns the stream lines.
// Files ending in .json are interpreted as event specs; anything else is
// split into lines verbatim.
func Lines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stream spec: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		lines, err := LinesFromSpec(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return lines, nil
	}
	return LinesFromRaw(data), nil
}

// LinesFromRaw splits raw .sse content on \n or \r\n. The content is
// responsible for its own framing, blank-line terminators included.
func LinesFromRaw(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n")
}

// LinesFromSpec converts a JSON event spec into stream lines.
//
// A numeric "retry" becomes "retry: <n>" followed by a blank line. Each
// entry of "events" yields an optional "event:", "id:" and "data:" line, in
// that order, and always a terminating blank line. String data is sent as
// is; any other data is sent as compact JSON with its key order intact.
func LinesFromSpec(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidSpec
	}
	spec := gjson.ParseBytes(data)

	var lines []string
	if retry := spec.Get("retry"); retry.Type == gjson.Number {
		lines = append(lines, fieldRetry+formatNumber(retry.Num), "")
	}

	events := spec.Get("events")
	if !events.IsArray() {
		return lines, nil
	}
	events.ForEach(func(_, ev gjson.Result) bool {
		lines = append(lines, eventLines(ev)...)
		return true
	})
	return lines, nil
}

func eventLines(ev gjson.Result) []string {
	var lines []string
	if !ev.IsObject() {
		return append(lines, "")
	}
	if name := ev.Get("event"); name.Exists() && name.Type != gjson.Null && name.String() != "" {
		lines = append(lines, fieldEvent+scalarString(name))
	}
	if id := ev.Get("id"); id.Exists() {
		lines = append(lines, fieldID+scalarString(id))
	}
	if payload := ev.Get("data"); payload.Exists() {
		if payload.Type == gjson.String {
			lines = append(lines, fieldData+payload.Str)
		} else {
			lines = append(lines, fieldData+compact(payload.Raw))
		}
	}
	return append(lines, "")
}

// scalarString renders a field value the way it appears after "event:" or
// "id:". Strings are unquoted; everything else keeps its JSON spelling.
func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return formatNumber(v.Num)
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return v.Raw
	default:
		return compact(v.Raw)
	}
}

func compact(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}

// formatNumber prints integral values without a fraction or exponent
// (3000, not 3e+03) and everything else in shortest form.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
