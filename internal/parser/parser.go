// Package parser classifies raw test/CI log lines into typed records and
// reassembles multi-line stack traces.
package parser

import (
	"time"

	"logsift/internal/domain"
)

// LineClassifier turns one raw log line into a record.
// ok is false when the line yields no record (strict mode only).
type LineClassifier interface {
	Classify(line string) (rec domain.Record, ok bool)
}

// DefaultLevels are the level tokens recognized by the leveled-line rule.
// PASS, FAIL, SKIP and ERROR are left to the test-result rule and WARNING to
// the warning rule, so those rules stay reachable.
var DefaultLevels = []string{"TRACE", "DEBUG", "INFO", "NOTICE", "WARN", "CRITICAL", "FATAL"}

// Options configures a Classifier
type Options struct {
	Mode   domain.Mode
	Levels []string         // Level tokens for the leveled rule, DefaultLevels when empty
	Now    func() time.Time // Clock used to synthesize timestamps, time.Now when nil
}
