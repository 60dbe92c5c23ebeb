package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"logsift/internal/domain"
)

// Viewer displays an organized report in an interactive TUI
type Viewer interface {
	View(output *domain.ReportOutput) error
}

// ReportViewer browses report buckets: bucket list on the left, bucket items on the right
type ReportViewer struct{}

// NewReportViewer creates a new ReportViewer
func NewReportViewer() *ReportViewer {
	return &ReportViewer{}
}

// View runs the TUI until the user exits
func (rv *ReportViewer) View(output *domain.ReportOutput) error {
	rep := output.Report
	if rep == nil || rep.Total() == 0 {
		color.Green("✓ Report is empty, nothing to browse")
		return nil
	}

	buckets := nonEmptyBuckets(rep)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, bucket := range buckets {
		list.AddItem(bucketListText(i, bucket, rep.Count(bucket)), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Run %s (%d records, %d sources) | ↑↓ to navigate, → to view items, ← to go back, Ctrl+C to exit ",
			output.Meta.RunID, output.Meta.Records, output.Meta.Sources))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(buckets) {
			return
		}
		bucket := buckets[index]
		statsView.SetText(formatBucketStats(bucket, rep.Count(bucket), rep.Total()))
		detailsView.SetText(formatBucketItems(bucket, rep.Items(bucket)))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func nonEmptyBuckets(rep *domain.Report) []string {
	var out []string
	for _, bucket := range domain.Buckets {
		if rep.Count(bucket) > 0 {
			out = append(out, bucket)
		}
	}
	return out
}

func bucketListText(index int, bucket string, count int) string {
	return fmt.Sprintf("[yellow]%d.[white] %s [gray](%d)[white]", index+1, BucketTitle(bucket), count)
}

func formatBucketStats(bucket string, count, total int) string {
	return fmt.Sprintf("[cyan]bucket:[white] [yellow]%s[white]  [cyan]items:[white] %d of %d\n", bucket, count, total)
}

// formatBucketItems renders bucket items with tview color tags; user text is escaped
func formatBucketItems(bucket string, items []string) string {
	var b strings.Builder
	tag := "[white]"
	switch bucket {
	case domain.BucketFailures, domain.BucketErrors:
		tag = "[red]"
	case domain.BucketWarnings, domain.BucketLongRunningTests, domain.BucketDeselectedTests:
		tag = "[yellow]"
	case domain.BucketPassed:
		tag = "[green]"
	}

	for i, item := range items {
		if bucket == domain.BucketStackTraces {
			fmt.Fprintf(&b, "[yellow]Trace %d:[white]\n", i+1)
			lines := strings.Split(item, "\n")
			for j, line := range lines {
				if j == maxTraceLines {
					fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(lines)-maxTraceLines)
					break
				}
				fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
			}
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "%s%s[white]\n", tag, tview.Escape(item))
	}
	return b.String()
}
