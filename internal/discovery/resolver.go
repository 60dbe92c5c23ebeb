package discovery

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver turns command arguments into a list of log sources
type Resolver struct {
	scanner *Scanner
	filter  *Filter
}

// NewResolver creates a new Resolver
func NewResolver(scanner *Scanner, filter *Filter) *Resolver {
	return &Resolver{scanner: scanner, filter: filter}
}

// Resolve expands each argument and filters the result by namePattern.
// Glob arguments ("logs/**/*.log") expand to their matches, directories are
// scanned for log files, and anything else is kept as given so that a
// missing file surfaces as an ingestion error rather than vanishing.
func (r *Resolver) Resolve(args []string, namePattern string) ([]string, error) {
	var sources []string
	seen := make(map[string]bool)
	add := func(paths ...string) {
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				sources = append(sources, p)
			}
		}
	}

	for _, arg := range args {
		if hasMeta(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			add(matches...)
			continue
		}

		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			files, err := r.scanner.Scan(arg)
			if err != nil {
				return nil, err
			}
			add(files...)
			continue
		}
		add(arg)
	}

	return r.filter.FilterByName(sources, namePattern), nil
}
