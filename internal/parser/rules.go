package parser

import (
	"regexp"
	"strings"

	"logsift/internal/domain"
)

// rule is one classification rule: a pattern and the builder that fills the
// kind-specific fields from its submatches.
type rule struct {
	kind     domain.Kind
	pattern  *regexp.Regexp
	build    func(rec *domain.Record, m []string, line string)
	fallback bool // catch-all, skipped in strict mode
}

var (
	summaryPattern    = regexp.MustCompile(`^=(.*)=$`)
	testResultPattern = regexp.MustCompile(`^(PASS|FAIL|SKIP|ERROR)\s+(\S+)$`)
	durationPattern   = regexp.MustCompile(`in\s+(\d+\.\d+)`)
	warningPattern    = regexp.MustCompile(`^\s*WARNING\s+(.*)$`)
	traceStartPattern = regexp.MustCompile(`^_+$`)
	traceLinePattern  = regexp.MustCompile(`/.*\.py:\d+`)
	liveLogPattern    = regexp.MustCompile(`^-{10,}\s+live log\s+session\w*\s+-{10,}$`)
	catchAllPattern   = regexp.MustCompile(`(?s)^.*$`)
)

// levelPattern matches a level token from levels followed by free text.
// ERROR counts as a level only when more than one token follows it; a single
// token is a test result.
func levelPattern(levels []string) *regexp.Regexp {
	quoted := make([]string, 0, len(levels))
	for _, lvl := range levels {
		if lvl = strings.TrimSpace(lvl); lvl != "" {
			quoted = append(quoted, regexp.QuoteMeta(lvl))
		}
	}
	return regexp.MustCompile(`^(?:(` + strings.Join(quoted, "|") + `)\s+(.+)|(ERROR)\s+(\S+\s+\S.*))$`)
}

// buildRules returns the rules in precedence order, most specific first.
// A looser rule placed earlier would shadow the ones after it.
func buildRules(levels []string) []rule {
	return []rule{
		{
			kind:    domain.KindSummary,
			pattern: summaryPattern,
			build: func(rec *domain.Record, m []string, _ string) {
				rec.Summary = strings.Trim(m[1], "= \t")
			},
		},
		{
			kind:    domain.KindLeveled,
			pattern: levelPattern(levels),
			build: func(rec *domain.Record, m []string, _ string) {
				if m[1] == "" {
					m = m[2:]
				}
				rec.Level = m[1]
				rec.Message = strings.TrimSpace(m[2])
			},
		},
		{
			kind:    domain.KindTestResult,
			pattern: testResultPattern,
			build: func(rec *domain.Record, m []string, _ string) {
				rec.Result = m[1]
				rec.TestName = m[2]
			},
		},
		{
			kind:    domain.KindDuration,
			pattern: durationPattern,
			build: func(rec *domain.Record, m []string, line string) {
				rec.DurationMessage = strings.TrimSpace(line)
				rec.Duration = m[1]
			},
		},
		{
			kind:    domain.KindWarning,
			pattern: warningPattern,
			build: func(rec *domain.Record, m []string, _ string) {
				rec.Warning = strings.TrimSpace(m[1])
			},
		},
		{
			kind:    domain.KindTraceStart,
			pattern: traceStartPattern,
			build:   func(*domain.Record, []string, string) {},
		},
		{
			kind:    domain.KindTraceLine,
			pattern: traceLinePattern,
			build: func(rec *domain.Record, _ []string, line string) {
				rec.TraceLine = strings.TrimSpace(line)
			},
		},
		{
			kind:    domain.KindLiveLogSession,
			pattern: liveLogPattern,
			build: func(rec *domain.Record, _ []string, line string) {
				rec.Session = strings.TrimSpace(line)
			},
		},
		{
			kind:     domain.KindMessage,
			pattern:  catchAllPattern,
			fallback: true,
			build: func(rec *domain.Record, _ []string, line string) {
				rec.Message = strings.TrimSpace(line)
			},
		},
	}
}
