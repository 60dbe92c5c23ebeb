package domain

import (
	"encoding/json"
	"strings"
)

// Kind identifies the classification rule that produced a Record
type Kind int

const (
	KindMessage Kind = iota
	KindSummary
	KindLeveled
	KindTestResult
	KindDuration
	KindWarning
	KindTraceStart
	KindTraceLine
	KindLiveLogSession
	// KindStackTrace is a dangling trace flushed with no terminating record
	KindStackTrace
)

var kindNames = map[Kind]string{
	KindMessage:        "message",
	KindSummary:        "summary",
	KindLeveled:        "leveled",
	KindTestResult:     "test_result",
	KindDuration:       "duration",
	KindWarning:        "warning",
	KindTraceStart:     "trace_start",
	KindTraceLine:      "trace_line",
	KindLiveLogSession: "live_log_session",
	KindStackTrace:     "stack_trace",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Transient reports whether records of this kind are consumed by the
// stack-trace accumulator and never reach the output sequence.
func (k Kind) Transient() bool {
	return k == KindTraceStart || k == KindTraceLine
}

// Field names used in the JSON encoding and by Has/Get.
const (
	FieldTimestamp       = "timestamp"
	FieldLevel           = "level"
	FieldMessage         = "message"
	FieldResult          = "result"
	FieldTestName        = "test_name"
	FieldTestSummary     = "test_summary"
	FieldDurationMessage = "duration_message"
	FieldDuration        = "duration"
	FieldWarningMessage  = "warning_message"
	FieldStackTraceStart = "stack_trace_start"
	FieldStackTraceLine  = "stack_trace_line"
	FieldLiveLogSession  = "live_log_session"
	FieldStackTrace      = "stack_trace"
)

// Test result values recognized by the classifier.
const (
	ResultPass  = "PASS"
	ResultFail  = "FAIL"
	ResultSkip  = "SKIP"
	ResultError = "ERROR"
)

var kindFields = map[Kind][]string{
	KindMessage:        {FieldMessage},
	KindSummary:        {FieldTestSummary},
	KindLeveled:        {FieldLevel, FieldMessage},
	KindTestResult:     {FieldResult, FieldTestName},
	KindDuration:       {FieldDurationMessage, FieldDuration},
	KindWarning:        {FieldWarningMessage},
	KindTraceStart:     {FieldStackTraceStart},
	KindTraceLine:      {FieldStackTraceLine},
	KindLiveLogSession: {FieldLiveLogSession},
}

// Record is one classified unit of output: a single log line, or a dangling
// stack trace. Only the fields belonging to Kind are meaningful.
type Record struct {
	Kind      Kind
	Timestamp string

	Level   string
	Message string

	Result   string
	TestName string

	Summary string

	DurationMessage string
	Duration        string

	Warning   string
	TraceLine string
	Session   string

	// StackTrace is attached by the accumulator to the record that ended a trace
	StackTrace []string
}

// Has reports whether the record carries the named field.
func (r Record) Has(field string) bool {
	switch field {
	case FieldTimestamp:
		return r.Timestamp != ""
	case FieldStackTrace:
		return len(r.StackTrace) > 0
	}
	for _, f := range kindFields[r.Kind] {
		if f == field {
			return true
		}
	}
	return false
}

// Get returns the named scalar field and whether it is present.
// The stack trace is returned newline-joined.
func (r Record) Get(field string) (string, bool) {
	if !r.Has(field) {
		return "", false
	}
	switch field {
	case FieldTimestamp:
		return r.Timestamp, true
	case FieldLevel:
		return r.Level, true
	case FieldMessage:
		return r.Message, true
	case FieldResult:
		return r.Result, true
	case FieldTestName:
		return r.TestName, true
	case FieldTestSummary:
		return r.Summary, true
	case FieldDurationMessage:
		return r.DurationMessage, true
	case FieldDuration:
		return r.Duration, true
	case FieldWarningMessage:
		return r.Warning, true
	case FieldStackTraceStart:
		return "true", true
	case FieldStackTraceLine:
		return r.TraceLine, true
	case FieldLiveLogSession:
		return r.Session, true
	case FieldStackTrace:
		return strings.Join(r.StackTrace, "\n"), true
	}
	return "", false
}

// Text returns the primary human-readable text of the record.
func (r Record) Text() string {
	switch r.Kind {
	case KindSummary:
		return r.Summary
	case KindLeveled:
		return r.Level + " " + r.Message
	case KindTestResult:
		return r.Result + " " + r.TestName
	case KindDuration:
		return r.DurationMessage
	case KindWarning:
		return "WARNING " + r.Warning
	case KindTraceStart:
		return "____"
	case KindTraceLine:
		return r.TraceLine
	case KindLiveLogSession:
		return r.Session
	case KindStackTrace:
		return strings.Join(r.StackTrace, "\n")
	}
	return r.Message
}

func (r Record) String() string {
	if r.Timestamp == "" {
		return r.Text()
	}
	return r.Timestamp + " " + r.Text()
}

// recordJSON is the wire shape: one optional field per record field so that
// only the fields present on a record are encoded.
type recordJSON struct {
	Timestamp       string   `json:"timestamp,omitempty"`
	Level           *string  `json:"level,omitempty"`
	Message         *string  `json:"message,omitempty"`
	Result          *string  `json:"result,omitempty"`
	TestName        *string  `json:"test_name,omitempty"`
	TestSummary     *string  `json:"test_summary,omitempty"`
	DurationMessage *string  `json:"duration_message,omitempty"`
	Duration        *string  `json:"duration,omitempty"`
	WarningMessage  *string  `json:"warning_message,omitempty"`
	StackTraceStart *bool    `json:"stack_trace_start,omitempty"`
	StackTraceLine  *string  `json:"stack_trace_line,omitempty"`
	LiveLogSession  *string  `json:"live_log_session,omitempty"`
	StackTrace      []string `json:"stack_trace,omitempty"`
}

// MarshalJSON encodes exactly the fields present on the record.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Timestamp: r.Timestamp, StackTrace: r.StackTrace}
	switch r.Kind {
	case KindMessage:
		out.Message = &r.Message
	case KindSummary:
		out.TestSummary = &r.Summary
	case KindLeveled:
		out.Level, out.Message = &r.Level, &r.Message
	case KindTestResult:
		out.Result, out.TestName = &r.Result, &r.TestName
	case KindDuration:
		out.DurationMessage, out.Duration = &r.DurationMessage, &r.Duration
	case KindWarning:
		out.WarningMessage = &r.Warning
	case KindTraceStart:
		start := true
		out.StackTraceStart = &start
	case KindTraceLine:
		out.StackTraceLine = &r.TraceLine
	case KindLiveLogSession:
		out.LiveLogSession = &r.Session
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a record, inferring Kind from the fields present.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Record{Timestamp: in.Timestamp, StackTrace: in.StackTrace}
	switch {
	case in.TestSummary != nil:
		r.Kind, r.Summary = KindSummary, *in.TestSummary
	case in.Level != nil:
		r.Kind, r.Level = KindLeveled, *in.Level
		if in.Message != nil {
			r.Message = *in.Message
		}
	case in.Result != nil:
		r.Kind, r.Result = KindTestResult, *in.Result
		if in.TestName != nil {
			r.TestName = *in.TestName
		}
	case in.Duration != nil:
		r.Kind, r.Duration = KindDuration, *in.Duration
		if in.DurationMessage != nil {
			r.DurationMessage = *in.DurationMessage
		}
	case in.WarningMessage != nil:
		r.Kind, r.Warning = KindWarning, *in.WarningMessage
	case in.StackTraceStart != nil:
		r.Kind = KindTraceStart
	case in.StackTraceLine != nil:
		r.Kind, r.TraceLine = KindTraceLine, *in.StackTraceLine
	case in.LiveLogSession != nil:
		r.Kind, r.Session = KindLiveLogSession, *in.LiveLogSession
	case in.Message != nil:
		r.Kind, r.Message = KindMessage, *in.Message
	case len(in.StackTrace) > 0:
		r.Kind = KindStackTrace
	}
	return nil
}
