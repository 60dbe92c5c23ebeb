package parser

import "logsift/internal/domain"

// Accumulator collects stack-trace lines between a start marker and the next
// record that is not a trace line. It is idle or collecting; it is not safe
// for concurrent use and belongs to a single ingestion.
type Accumulator struct {
	collecting bool
	buf        []string
}

// Collecting reports whether a trace start marker has been seen and not yet
// terminated.
func (a *Accumulator) Collecting() bool {
	return a.collecting
}

// Feed advances the state machine with the next classified record. emit is
// true when out should be appended to the output sequence.
//
// A start marker (re)starts collection with an empty buffer. A trace line is
// buffered while collecting and otherwise emitted as a plain message. Any
// other record ends collection and receives the buffered lines.
func (a *Accumulator) Feed(rec domain.Record) (out domain.Record, emit bool) {
	switch rec.Kind {
	case domain.KindTraceStart:
		a.collecting = true
		a.buf = nil
		return domain.Record{}, false

	case domain.KindTraceLine:
		if a.collecting {
			a.buf = append(a.buf, rec.TraceLine)
			return domain.Record{}, false
		}
		return domain.Record{Kind: domain.KindMessage, Timestamp: rec.Timestamp, Message: rec.TraceLine}, true
	}

	if a.collecting {
		if len(a.buf) > 0 {
			rec.StackTrace = a.buf
		}
		a.reset()
	}
	return rec, true
}

// Drop handles a line that produced no record. Collection ends and a
// non-empty buffer is returned as a standalone trace record.
func (a *Accumulator) Drop() (domain.Record, bool) {
	return a.Flush()
}

// Flush ends collection at end of input. A non-empty buffer is returned as a
// standalone record carrying only the stack trace.
func (a *Accumulator) Flush() (domain.Record, bool) {
	defer a.reset()
	if !a.collecting || len(a.buf) == 0 {
		return domain.Record{}, false
	}
	return domain.Record{Kind: domain.KindStackTrace, StackTrace: a.buf}, true
}

func (a *Accumulator) reset() {
	a.collecting = false
	a.buf = nil
}
