package parser

import (
	"strings"

	"logsift/internal/domain"
)

// Classifier assigns a raw log line to exactly one record kind.
// It holds no per-line state and is safe for concurrent use.
type Classifier struct {
	mode       domain.Mode
	timestamps *TimestampExtractor
	rules      []rule
}

// NewClassifier creates a Classifier for the given options.
func NewClassifier(opts Options) *Classifier {
	levels := opts.Levels
	if len(levels) == 0 {
		levels = DefaultLevels
	}
	return &Classifier{
		mode:       opts.Mode,
		timestamps: NewTimestampExtractor(opts.Mode, opts.Now),
		rules:      buildRules(levels),
	}
}

// Mode returns the parser generation the classifier implements.
func (c *Classifier) Mode() domain.Mode {
	return c.mode
}

// Classify strips the timestamp from line and returns the record built by the
// first matching rule. In tolerant mode it always returns ok=true; in strict
// mode a line without a strict timestamp, or one only the catch-all would
// match, returns ok=false.
func (c *Classifier) Classify(line string) (domain.Record, bool) {
	ts, rest, found := c.timestamps.Extract(strings.TrimSpace(line))
	if !found && c.mode == domain.ModeStrict {
		return domain.Record{}, false
	}

	for _, r := range c.rules {
		if r.fallback && c.mode == domain.ModeStrict {
			continue
		}
		m := r.pattern.FindStringSubmatch(rest)
		if m == nil {
			continue
		}
		rec := domain.Record{Kind: r.kind, Timestamp: ts}
		r.build(&rec, m, rest)
		return rec, true
	}

	if c.mode == domain.ModeStrict {
		return domain.Record{}, false
	}
	// unreachable with the catch-all in place; kept so Classify never fails
	return domain.Record{Kind: domain.KindMessage, Timestamp: ts, Message: strings.TrimSpace(rest)}, true
}
