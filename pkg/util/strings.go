package util

import "unicode/utf8"

// MaxLogBodySize is the default maximum body size for logging (2KB).
const MaxLogBodySize = 2 * 1024

const truncatedSuffix = "...(truncated)"

// TruncateBody shortens data to at most maxSize bytes and appends
// "...(truncated)" when anything was cut. The cut never splits a UTF-8
// sequence. If maxSize <= 0, MaxLogBodySize is used.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) <= maxSize {
		return data
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return data[:cut] + truncatedSuffix
}
