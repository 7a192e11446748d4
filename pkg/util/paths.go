package util

import (
	"path/filepath"
	"strings"
)

// Within reports whether target, once cleaned, lies inside base (or is base).
func Within(base, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
