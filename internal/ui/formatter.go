package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"logsift/internal/domain"
)

// maxTraceLines is how many lines of each stack trace are printed
const maxTraceLines = 10

var titleCaser = cases.Title(language.English)

// BucketTitle returns the display title of a report bucket ("long_running_tests" -> "Long Running Tests")
func BucketTitle(bucket string) string {
	title := titleCaser.String(strings.ReplaceAll(bucket, "_", " "))
	return strings.Replace(title, "Api ", "API ", 1)
}

// Formatter formats and displays reports
type Formatter struct {
	out io.Writer

	header  *color.Color
	label   *color.Color
	good    *color.Color
	bad     *color.Color
	warn    *color.Color
	neutral *color.Color
}

// NewFormatter creates a new Formatter writing to out (color.Output when nil)
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = color.Output
	}
	return &Formatter{
		out:     out,
		header:  color.New(color.FgCyan),
		label:   color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		neutral: color.New(color.FgWhite),
	}
}

// PrintMetaStats displays the run statistics table and the pass rate
func (f *Formatter) PrintMetaStats(output *domain.ReportOutput) {
	meta := output.Meta
	rep := output.Report
	if rep == nil {
		rep = domain.NewReport()
	}

	fmt.Fprint(f.out, "\n")
	f.header.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	f.header.Fprintln(f.out, "║                     Log Ingestion Statistics                  ║")
	f.header.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	const sep = "├─────────────────────────────────┼─────────────────────────────┤"
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")

	rows := []struct {
		name  string
		value string
		c     *color.Color
	}{
		{"Sources", fmt.Sprint(meta.Sources), f.neutral},
		{"Failed Sources", fmt.Sprint(meta.FailedSources), f.countColor(meta.FailedSources, f.bad)},
		{"Lines Read", fmt.Sprint(meta.Lines), f.neutral},
		{"Records", fmt.Sprint(meta.Records), f.neutral},
		{"Dropped Lines", fmt.Sprint(meta.DroppedLines), f.countColor(meta.DroppedLines, f.warn)},
		{"Failures", fmt.Sprint(len(rep.Failures)), f.countColor(len(rep.Failures), f.bad)},
		{"Errors", fmt.Sprint(len(rep.Errors)), f.countColor(len(rep.Errors), f.bad)},
		{"Warnings", fmt.Sprint(len(rep.Warnings)), f.countColor(len(rep.Warnings), f.warn)},
		{"Mode", meta.Mode, f.neutral},
		{"Workers", fmt.Sprint(meta.Workers), f.neutral},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), f.neutral},
		{"Timestamp", meta.Timestamp, f.neutral},
	}
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.name)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, sep)
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")
	fmt.Fprintln(f.out)

	if rate, ok := rep.PassRate(); ok {
		passed := len(rep.Passed)
		total := passed + len(rep.Failures) + len(rep.Errors)
		if passed == total {
			f.good.Fprintf(f.out, "✓ All %d test(s) passed\n", total)
		} else {
			f.bad.Fprintf(f.out, "✗ %d of %d test(s) passed (%.1f%%)\n", passed, total, rate*100)
		}
	} else {
		f.warn.Fprintln(f.out, "No test results found")
	}
}

// PrintReport prints every non-empty bucket, in display order
func (f *Formatter) PrintReport(rep *domain.Report) {
	for _, bucket := range domain.Buckets {
		items := rep.Items(bucket)
		if len(items) == 0 {
			continue
		}

		fmt.Fprintln(f.out)
		f.label.Fprintf(f.out, "%s (%d):\n", BucketTitle(bucket), len(items))
		c := f.bucketColor(bucket)
		for _, item := range items {
			if bucket == domain.BucketStackTraces {
				f.printTrace(item)
				continue
			}
			c.Fprintf(f.out, "  %s\n", item)
		}
	}
}

// PrintSourceFailures lists sources that could not be ingested
func (f *Formatter) PrintSourceFailures(failures []domain.SourceFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(f.out)
	f.bad.Fprintf(f.out, "✗ %d source(s) could not be ingested:\n", len(failures))
	for _, sf := range failures {
		f.warn.Fprintf(f.out, "  %s", sf.Path)
		fmt.Fprintf(f.out, " [%s] %s\n", sf.Kind, sf.Error)
	}
}

func (f *Formatter) printTrace(trace string) {
	lines := strings.Split(trace, "\n")
	for i, line := range lines {
		if i == maxTraceLines {
			fmt.Fprintf(f.out, "    ... and %d more lines\n", len(lines)-maxTraceLines)
			break
		}
		fmt.Fprintf(f.out, "    %s\n", line)
	}
	fmt.Fprintln(f.out, "    ──")
}

func (f *Formatter) bucketColor(bucket string) *color.Color {
	switch bucket {
	case domain.BucketFailures, domain.BucketErrors:
		return f.bad
	case domain.BucketWarnings, domain.BucketLongRunningTests, domain.BucketDeselectedTests:
		return f.warn
	case domain.BucketPassed:
		return f.good
	}
	return f.neutral
}

func (f *Formatter) countColor(n int, nonZero *color.Color) *color.Color {
	if n == 0 {
		return f.good
	}
	return nonZero
}
