// Package ingest drives the classifier and the stack-trace accumulator over
// line sources and produces finalized record sequences.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"logsift/internal/domain"
	"logsift/internal/parser"
)

// DefaultMaxLineLength is the longest line accepted before the read fails.
const DefaultMaxLineLength = 1024 * 1024

// Options configures a Pipeline
type Options struct {
	Mode           domain.Mode
	Levels         []string
	Workers        int  // Classification workers; 1 or less scans sequentially
	KeepBlankLines bool // Classify blank lines instead of skipping them
	MaxLineLength  int
	Now            func() time.Time
}

// Stats counts what happened to the lines of one source
type Stats struct {
	Lines   int // Lines read, blank included
	Blank   int // Blank lines skipped
	Dropped int // Lines that produced no record
	Records int // Records emitted
	Traces  int // Records carrying a stack trace
}

// Progress receives per-source updates from IngestSources
type Progress interface {
	Update(done, records, failed int)
	Finish()
}

// Pipeline turns line sources into finalized records
type Pipeline struct {
	opts       Options
	classifier *parser.Classifier
	pool       *WorkerPool
	progress   Progress
}

// New creates a Pipeline from the given options.
func New(opts Options) *Pipeline {
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = DefaultMaxLineLength
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	classifier := parser.NewClassifier(parser.Options{
		Mode:   opts.Mode,
		Levels: opts.Levels,
		Now:    opts.Now,
	})
	return &Pipeline{
		opts:       opts,
		classifier: classifier,
		pool:       NewWorkerPool(classifier, NewRoundRobinScheduler(), opts.Workers),
	}
}

// SetProgress sets the progress reporter used by IngestSources
func (p *Pipeline) SetProgress(progress Progress) {
	p.progress = progress
}

// Ingest reads lines from r until EOF and returns the finalized records in
// input order. On a read failure or cancellation it returns the records
// finalized so far, including a flushed dangling trace, with the error.
func (p *Pipeline) Ingest(ctx context.Context, r io.Reader) ([]domain.Record, Stats, error) {
	return p.ingest(ctx, r, "")
}

// IngestFile opens path and ingests it. If the file cannot be opened it
// returns no records and a SourceError matching ErrSourceUnavailable.
func (p *Pipeline) IngestFile(ctx context.Context, path string) ([]domain.Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, &SourceError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, Stats{}, &SourceError{Op: "open", Path: path, Err: errIsDirectory}
	}

	return p.ingest(ctx, f, path)
}

// IngestSources ingests every path in order, continuing past sources that
// fail. Each failure is kept on its SourceResult.
func (p *Pipeline) IngestSources(ctx context.Context, paths []string) *domain.Run {
	run := &domain.Run{
		ID:      uuid.NewString(),
		Mode:    p.opts.Mode,
		Workers: p.opts.Workers,
		Started: time.Now(),
	}

	records, failed := 0, 0
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		recs, stats, err := p.IngestFile(ctx, path)
		if err != nil {
			failed++
			slog.Warn("ingest source", "path", path, "kind", FailureKind(err), "err", err)
		} else {
			slog.Debug("ingested source", "path", path, "lines", stats.Lines, "records", stats.Records, "dropped", stats.Dropped)
		}
		records += len(recs)
		run.Sources = append(run.Sources, domain.SourceResult{
			Path:    path,
			Records: recs,
			Lines:   stats.Lines,
			Dropped: stats.Dropped,
			Err:     err,
		})
		if p.progress != nil {
			p.progress.Update(i+1, records, failed)
		}
	}
	if p.progress != nil {
		p.progress.Finish()
	}

	run.Duration = time.Since(run.Started)
	return run
}

func (p *Pipeline) ingest(ctx context.Context, r io.Reader, path string) ([]domain.Record, Stats, error) {
	scanner := bufio.NewScanner(r)
	// initial capacity must not exceed the limit
	scanner.Buffer(make([]byte, 0, min(bufio.MaxScanTokenSize, p.opts.MaxLineLength)), p.opts.MaxLineLength)

	c := &collector{}
	if p.opts.Workers > 1 {
		return p.ingestParallel(ctx, scanner, c, path)
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return c.finish(), c.stats, fmt.Errorf("ingest canceled: %w", err)
		}
		line, ok := p.nextLine(scanner.Text(), c)
		if !ok {
			continue
		}
		c.add(p.classifier.Classify(line))
	}

	if err := scanner.Err(); err != nil {
		return c.finish(), c.stats, &SourceError{Op: "read", Path: path, Err: err}
	}
	return c.finish(), c.stats, nil
}

// ingestParallel reads lines until EOF or cancellation, classifies them on
// the worker pool and folds the ordered results through the accumulator.
func (p *Pipeline) ingestParallel(ctx context.Context, scanner *bufio.Scanner, c *collector, path string) ([]domain.Record, Stats, error) {
	var lines []string
	var cancelErr error
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			cancelErr = err
			break
		}
		if line, ok := p.nextLine(scanner.Text(), c); ok {
			lines = append(lines, line)
		}
	}
	var readErr error
	if cancelErr == nil {
		readErr = scanner.Err()
	}

	for _, res := range p.pool.Classify(lines) {
		c.add(res.rec, res.ok)
	}

	if readErr != nil {
		return c.finish(), c.stats, &SourceError{Op: "read", Path: path, Err: readErr}
	}
	if cancelErr != nil {
		return c.finish(), c.stats, fmt.Errorf("ingest canceled: %w", cancelErr)
	}
	return c.finish(), c.stats, nil
}

// nextLine trims a raw line and reports whether it should be classified.
func (p *Pipeline) nextLine(raw string, c *collector) (string, bool) {
	c.stats.Lines++
	line := strings.TrimSpace(raw)
	if line == "" && !p.opts.KeepBlankLines {
		c.stats.Blank++
		return "", false
	}
	return line, true
}

// collector owns the accumulator and the output sequence of one ingestion
type collector struct {
	acc     parser.Accumulator
	records []domain.Record
	stats   Stats
}

func (c *collector) add(rec domain.Record, ok bool) {
	if !ok {
		c.stats.Dropped++
		if out, emit := c.acc.Drop(); emit {
			c.emit(out)
		}
		return
	}
	if out, emit := c.acc.Feed(rec); emit {
		c.emit(out)
	}
}

func (c *collector) emit(rec domain.Record) {
	if len(rec.StackTrace) > 0 {
		c.stats.Traces++
	}
	c.records = append(c.records, rec)
}

func (c *collector) finish() []domain.Record {
	if out, emit := c.acc.Flush(); emit {
		c.emit(out)
	}
	c.stats.Records = len(c.records)
	return c.records
}
