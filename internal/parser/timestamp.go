package parser

import (
	"regexp"
	"strings"
	"time"

	"logsift/internal/domain"
)

// TimestampLayout is the textual timestamp format consumed and produced.
const TimestampLayout = "2006-01-02 15:04:05"

var (
	// YYYY-MM-DD HH:MM:SS with optional sub-second precision
	tolerantTimestamp = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})(?:[,.]\d+)?`)
	// YYYY-MM-DD HH:MM:SS with optional ,mmm, followed by whitespace or end of line
	strictTimestamp = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})(?:,\d{3})?(?:\s|$)`)
)

// TimestampExtractor detects and strips a leading timestamp
type TimestampExtractor struct {
	mode domain.Mode
	now  func() time.Time
}

// NewTimestampExtractor creates a TimestampExtractor. A nil clock means time.Now.
func NewTimestampExtractor(mode domain.Mode, now func() time.Time) *TimestampExtractor {
	if now == nil {
		now = time.Now
	}
	return &TimestampExtractor{mode: mode, now: now}
}

// Extract returns the leading timestamp and the rest of the line with the
// timestamp and following whitespace removed. When the line has no valid
// timestamp, it returns a synthesized one, the unchanged line and ok=false.
// A match that is not a real calendar time counts as no timestamp.
func (e *TimestampExtractor) Extract(line string) (ts string, rest string, ok bool) {
	re := tolerantTimestamp
	if e.mode == domain.ModeStrict {
		re = strictTimestamp
	}

	if m := re.FindStringSubmatch(line); m != nil {
		if _, err := time.Parse(TimestampLayout, m[1]); err == nil {
			matched := strings.TrimRight(m[0], " \t")
			return matched, strings.TrimLeft(line[len(matched):], " \t"), true
		}
	}

	return e.now().Format(TimestampLayout), line, false
}
