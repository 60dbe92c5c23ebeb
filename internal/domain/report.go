package domain

import "strings"

// Bucket names of a Report, in display order.
const (
	BucketTestResultsSummary = "test_results_summary"
	BucketFailures           = "failures"
	BucketErrors             = "errors"
	BucketPassed             = "passed"
	BucketSkipped            = "skipped"
	BucketWarnings           = "warnings"
	BucketAPIRequests        = "api_requests"
	BucketLongRunningTests   = "long_running_tests"
	BucketStackTraces        = "stack_traces"
	BucketDeselectedTests    = "deselected_tests"
	BucketLogEntries         = "log_entries"
	BucketOtherInfo          = "other_info"
)

// Buckets lists every bucket name in display order.
var Buckets = []string{
	BucketTestResultsSummary,
	BucketFailures,
	BucketErrors,
	BucketPassed,
	BucketSkipped,
	BucketWarnings,
	BucketAPIRequests,
	BucketLongRunningTests,
	BucketStackTraces,
	BucketDeselectedTests,
	BucketLogEntries,
	BucketOtherInfo,
}

// Report is the categorized aggregate of one ingestion run.
type Report struct {
	TestResultsSummary []string   `json:"test_results_summary"`
	Failures           []string   `json:"failures"`
	Errors             []string   `json:"errors"`
	Passed             []string   `json:"passed"`
	Skipped            []string   `json:"skipped"`
	Warnings           []string   `json:"warnings"`
	APIRequests        []string   `json:"api_requests"`
	LongRunningTests   []string   `json:"long_running_tests"`
	StackTraces        [][]string `json:"stack_traces"`
	DeselectedTests    []string   `json:"deselected_tests"`
	LogEntries         []Record   `json:"log_entries"`
	OtherInfo          []Record   `json:"other_info"`
}

// NewReport returns a Report with every bucket empty but non-nil, so that
// buckets encode as [] rather than null.
func NewReport() *Report {
	return &Report{
		TestResultsSummary: []string{},
		Failures:           []string{},
		Errors:             []string{},
		Passed:             []string{},
		Skipped:            []string{},
		Warnings:           []string{},
		APIRequests:        []string{},
		LongRunningTests:   []string{},
		StackTraces:        [][]string{},
		DeselectedTests:    []string{},
		LogEntries:         []Record{},
		OtherInfo:          []Record{},
	}
}

// Count returns the number of items in the named bucket.
func (r *Report) Count(bucket string) int {
	switch bucket {
	case BucketStackTraces:
		return len(r.StackTraces)
	case BucketLogEntries:
		return len(r.LogEntries)
	case BucketOtherInfo:
		return len(r.OtherInfo)
	}
	return len(r.strings(bucket))
}

// Total returns the number of items across all buckets.
func (r *Report) Total() int {
	total := 0
	for _, b := range Buckets {
		total += r.Count(b)
	}
	return total
}

// Items renders the named bucket as display lines, one per item.
// A stack trace is one item with its lines joined by newlines.
func (r *Report) Items(bucket string) []string {
	switch bucket {
	case BucketStackTraces:
		items := make([]string, 0, len(r.StackTraces))
		for _, trace := range r.StackTraces {
			items = append(items, strings.Join(trace, "\n"))
		}
		return items
	case BucketLogEntries, BucketOtherInfo:
		records := r.LogEntries
		if bucket == BucketOtherInfo {
			records = r.OtherInfo
		}
		items := make([]string, 0, len(records))
		for _, rec := range records {
			items = append(items, rec.String())
		}
		return items
	}
	return append([]string(nil), r.strings(bucket)...)
}

// PassRate returns passed / (passed + failures + errors). ok is false when
// the report holds no test results.
func (r *Report) PassRate() (rate float64, ok bool) {
	total := len(r.Passed) + len(r.Failures) + len(r.Errors)
	if total == 0 {
		return 0, false
	}
	return float64(len(r.Passed)) / float64(total), true
}

func (r *Report) strings(bucket string) []string {
	switch bucket {
	case BucketTestResultsSummary:
		return r.TestResultsSummary
	case BucketFailures:
		return r.Failures
	case BucketErrors:
		return r.Errors
	case BucketPassed:
		return r.Passed
	case BucketSkipped:
		return r.Skipped
	case BucketWarnings:
		return r.Warnings
	case BucketAPIRequests:
		return r.APIRequests
	case BucketLongRunningTests:
		return r.LongRunningTests
	case BucketDeselectedTests:
		return r.DeselectedTests
	}
	return nil
}
