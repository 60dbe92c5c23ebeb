package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner scans a directory tree for log files
type Scanner struct {
	suffixes []string
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner matching files by suffix and skipping the given directory names
func NewScanner(suffixes []string, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{suffixes: suffixes, skipDirs: skipMap}
}

// Scan finds all log files under root, in lexical walk order
func (s *Scanner) Scan(root string) ([]string, error) {
	var logFiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("log path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			// Skip hidden directories
			if strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isLogFile(d.Name()) {
			logFiles = append(logFiles, path)
		}
		return nil
	})

	return logFiles, err
}

func (s *Scanner) isLogFile(name string) bool {
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
