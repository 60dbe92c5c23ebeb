// Package report folds a finalized record sequence into a categorized Report.
package report

import (
	"math"
	"strconv"
	"strings"

	"logsift/internal/domain"
)

// DefaultLongRunningThreshold is the duration, in seconds, above which a
// duration line counts as long-running.
const DefaultLongRunningThreshold = 10.0

// Markers looked for in message text.
const (
	DeselectedMarker = "deselected"
	APIRequestMarker = "REST:"
)

// Options configures an Organizer
type Options struct {
	Mode                 domain.Mode
	LongRunningThreshold float64 // DefaultLongRunningThreshold when zero
}

// Organizer buckets records into a Report
type Organizer struct {
	mode      domain.Mode
	threshold float64
}

// NewOrganizer creates a new Organizer
func NewOrganizer(opts Options) *Organizer {
	threshold := opts.LongRunningThreshold
	if threshold <= 0 {
		threshold = DefaultLongRunningThreshold
	}
	return &Organizer{mode: opts.Mode, threshold: threshold}
}

// Organize places each record in exactly one bucket, in input order. The
// first matching check wins:
//
//	test summary, test result, warning, long-running duration, stack trace,
//	deselected message, REST: message, timestamped entry, other.
//
// In strict mode the timestamped-entry bucket is not used and those records
// land in other_info.
func (o *Organizer) Organize(records []domain.Record) *domain.Report {
	rep := domain.NewReport()

	for _, rec := range records {
		switch {
		case rec.Has(domain.FieldTestSummary):
			rep.TestResultsSummary = append(rep.TestResultsSummary, rec.Summary)

		case rec.Has(domain.FieldResult):
			switch rec.Result {
			case domain.ResultFail:
				rep.Failures = append(rep.Failures, rec.TestName)
			case domain.ResultError:
				rep.Errors = append(rep.Errors, rec.TestName)
			case domain.ResultPass:
				rep.Passed = append(rep.Passed, rec.TestName)
			case domain.ResultSkip:
				rep.Skipped = append(rep.Skipped, rec.TestName)
			}

		case rec.Has(domain.FieldWarningMessage):
			rep.Warnings = append(rep.Warnings, rec.Warning)

		case o.longRunning(rec):
			rep.LongRunningTests = append(rep.LongRunningTests, rec.DurationMessage)

		case rec.Has(domain.FieldStackTrace):
			rep.StackTraces = append(rep.StackTraces, rec.StackTrace)

		case rec.Has(domain.FieldMessage) && strings.Contains(rec.Message, DeselectedMarker):
			rep.DeselectedTests = append(rep.DeselectedTests, rec.Message)

		case rec.Has(domain.FieldMessage) && strings.Contains(rec.Message, APIRequestMarker):
			rep.APIRequests = append(rep.APIRequests, rec.Message)

		case o.mode == domain.ModeTolerant && rec.Has(domain.FieldTimestamp):
			rep.LogEntries = append(rep.LogEntries, rec)

		default:
			rep.OtherInfo = append(rep.OtherInfo, rec)
		}
	}

	return rep
}

// longRunning reports whether rec has a duration above the threshold.
// A duration that does not parse is not long-running.
func (o *Organizer) longRunning(rec domain.Record) bool {
	if !rec.Has(domain.FieldDuration) {
		return false
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(rec.Duration), 64)
	if err != nil || seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return false
	}
	return seconds > o.threshold
}
