package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"logsift/internal/domain"
	"logsift/internal/ingest"
)

// Result is the outcome of one command run
type Result struct {
	Command  string
	ExitCode int
	Records  []domain.Record
	Stats    ingest.Stats
	Started  time.Time
	Duration time.Duration
	Err      error // Ingestion error, nil when the whole output was read
}

// Source converts the result into a run source named after the command
func (r *Result) Source() domain.SourceResult {
	return domain.SourceResult{
		Path:    r.Command,
		Records: r.Records,
		Lines:   r.Stats.Lines,
		Dropped: r.Stats.Dropped,
		Err:     r.Err,
	}
}

// Runner executes a test command and classifies its combined output as it is produced
type Runner struct {
	pipeline    *ingest.Pipeline
	dir         string
	env         []string
	passthrough io.Writer
}

// NewRunner creates a new Runner
func NewRunner(pipeline *ingest.Pipeline) *Runner {
	return &Runner{pipeline: pipeline}
}

// SetDir sets the working directory of the command
func (r *Runner) SetDir(dir string) {
	r.dir = dir
}

// SetEnv appends KEY=VALUE pairs to the inherited environment
func (r *Runner) SetEnv(env ...string) {
	r.env = append(r.env, env...)
}

// SetPassthrough copies the command output to w while it is classified
func (r *Runner) SetPassthrough(w io.Writer) {
	r.passthrough = w
}

// Run executes name with args. A non-zero exit status is reported in
// Result.ExitCode, not as an error; the error is for commands that could not
// be started.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), r.env...)

	pr, pw := io.Pipe()
	var out io.Writer = pw
	if r.passthrough != nil {
		out = io.MultiWriter(pw, r.passthrough)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	result := &Result{
		Command: strings.Join(append([]string{name}, args...), " "),
		Started: time.Now(),
	}

	if err := cmd.Start(); err != nil {
		pw.Close()
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		pw.Close()
		waitErr <- err
	}()

	result.Records, result.Stats, result.Err = r.pipeline.Ingest(ctx, pr)
	// drain any output left after a read failure
	_, _ = io.Copy(io.Discard, pr)

	err := <-waitErr
	result.Duration = time.Since(result.Started)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, fmt.Errorf("wait for %s: %w", name, err)
	}
	return result, nil
}
