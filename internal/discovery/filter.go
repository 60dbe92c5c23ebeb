package discovery

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter filters log files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the files whose base name matches pattern.
// Patterns with wildcards ("*pytest*.log", "ci-??.log") are matched against
// the base name; plain patterns match as a substring.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	var filtered []string
	for _, file := range files {
		name := filepath.Base(file)

		if !hasMeta(pattern) {
			if strings.Contains(name, pattern) {
				filtered = append(filtered, file)
			}
			continue
		}

		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			filtered = append(filtered, file)
		}
	}

	return filtered
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
