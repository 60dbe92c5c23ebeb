package commands

import (
	"github.com/spf13/cobra"

	"logsift/internal/storage"
	"logsift/internal/ui"
)

// ReportCommand handles the report command
type ReportCommand struct {
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(st storage.Storage, formatter *ui.Formatter) *ReportCommand {
	return &ReportCommand{
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := rc.storage.Load()
	if err != nil {
		return err
	}

	rc.formatter.PrintReport(output.Report)
	rc.formatter.PrintMetaStats(output)
	rc.formatter.PrintSourceFailures(output.SourceFailures)
	return nil
}
