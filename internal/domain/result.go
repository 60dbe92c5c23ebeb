package domain

import "time"

// SourceResult is the outcome of ingesting a single line source
type SourceResult struct {
	Path    string   // Path of the log file
	Records []Record // Finalized records, possibly partial when Err is a read failure
	Lines   int      // Lines read
	Dropped int      // Lines that produced no record (strict mode)
	Err     error    // Source-level error, nil on success
}

// Run is one ingestion run over one or more sources
type Run struct {
	ID       string
	Mode     Mode
	Workers  int
	Started  time.Time
	Duration time.Duration
	Sources  []SourceResult
}

// Records returns the finalized records of every source, in source order.
func (r *Run) Records() []Record {
	var all []Record
	for _, src := range r.Sources {
		all = append(all, src.Records...)
	}
	return all
}

// Failed returns the sources that ended with an error.
func (r *Run) Failed() []SourceResult {
	var failed []SourceResult
	for _, src := range r.Sources {
		if src.Err != nil {
			failed = append(failed, src)
		}
	}
	return failed
}

// Meta summarizes the run for storage and display.
func (r *Run) Meta() RunMeta {
	meta := RunMeta{
		RunID:           r.ID,
		Sources:         len(r.Sources),
		FailedSources:   len(r.Failed()),
		Duration:        r.Duration.String(),
		DurationSeconds: r.Duration.Seconds(),
		Workers:         r.Workers,
		Mode:            r.Mode.String(),
		Timestamp:       r.Started.Format(time.RFC3339),
	}
	for _, src := range r.Sources {
		meta.Lines += src.Lines
		meta.Records += len(src.Records)
		meta.DroppedLines += src.Dropped
	}
	return meta
}

// RunMeta contains metadata about an ingestion run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	Sources         int     `json:"sources"`
	FailedSources   int     `json:"failed_sources"`
	Lines           int     `json:"lines"`
	Records         int     `json:"records"`
	DroppedLines    int     `json:"dropped_lines"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Mode            string  `json:"mode"`
	Timestamp       string  `json:"timestamp"`
}

// SourceFailure records a source that could not be ingested
type SourceFailure struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"` // not_found, unavailable, read_failure, canceled
	Error string `json:"error"`
}

// ReportOutput is the complete persisted structure for a run
type ReportOutput struct {
	Meta           RunMeta         `json:"meta"`
	Report         *Report         `json:"report"`
	SourceFailures []SourceFailure `json:"source_failures,omitempty"`
}
