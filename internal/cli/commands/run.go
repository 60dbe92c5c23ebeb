package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"logsift/internal/config"
	"logsift/internal/domain"
	"logsift/internal/execution"
	"logsift/internal/storage"
	"logsift/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	analyzer  *Analyzer
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	analyzer *Analyzer,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		analyzer:  analyzer,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the test command, classifies its output and saves the report
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	runner := execution.NewRunner(rc.analyzer.Pipeline())
	if !rc.config.Flags.JSON {
		runner.SetPassthrough(os.Stdout)
	}

	result, err := runner.Run(cmd.Context(), args[0], args[1:]...)
	if err != nil {
		return err
	}

	run := &domain.Run{
		ID:       uuid.NewString(),
		Mode:     rc.config.ParsedMode(),
		Workers:  rc.config.Workers,
		Started:  result.Started,
		Duration: result.Duration,
		Sources:  []domain.SourceResult{result.Source()},
	}
	output := storage.NewOutput(run, rc.analyzer.Organize(run))
	if err := rc.storage.SaveOutput(output); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	if rc.config.Flags.JSON {
		if err := writeJSON(os.Stdout, output); err != nil {
			return err
		}
	} else {
		rc.formatter.PrintMetaStats(output)
		rc.formatter.PrintSourceFailures(output.SourceFailures)
	}

	if result.ExitCode != 0 {
		color.Red("✗ %s exited with code %d", result.Command, result.ExitCode)
		return fmt.Errorf("command exited with code %d", result.ExitCode)
	}
	return nil
}
