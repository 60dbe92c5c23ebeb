package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrSourceUnavailable means the line source could not be opened
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceRead means reading failed after the source was opened
	ErrSourceRead = errors.New("source read failure")

	errIsDirectory = errors.New("is a directory")
)

// Failure kinds reported by FailureKind.
const (
	KindNotFound    = "not_found"
	KindUnavailable = "unavailable"
	KindReadFailure = "read_failure"
	KindCanceled    = "canceled"
)

// SourceError is a source-level ingestion failure.
// It matches ErrSourceUnavailable (Op "open") or ErrSourceRead (Op "read")
// with errors.Is, and unwraps to the underlying I/O error.
type SourceError struct {
	Op   string // "open" or "read"
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s source: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes SourceError match the sentinel for its Op.
func (e *SourceError) Is(target error) bool {
	switch target {
	case ErrSourceUnavailable:
		return e.Op == "open"
	case ErrSourceRead:
		return e.Op == "read"
	}
	return false
}

// IsNotFound reports whether err means the source does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) && errors.Is(err, fs.ErrNotExist)
}

// FailureKind classifies a source error as not_found, unavailable,
// read_failure or canceled. It returns "" for nil and for other errors.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotFound(err):
		return KindNotFound
	case errors.Is(err, ErrSourceUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrSourceRead):
		return KindReadFailure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}
	return ""
}
