package commands

import (
	"errors"
	"fmt"
	"os"

	"logsift/internal/config"
	"logsift/internal/storage"
	"logsift/internal/ui"

	"github.com/spf13/cobra"
)

// ParseCommand handles the parse command
type ParseCommand struct {
	config    *config.Config
	analyzer  *Analyzer
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewParseCommand creates a new ParseCommand
func NewParseCommand(
	cfg *config.Config,
	analyzer *Analyzer,
	st storage.Storage,
	formatter *ui.Formatter,
) *ParseCommand {
	return &ParseCommand{
		config:    cfg,
		analyzer:  analyzer,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (pc *ParseCommand) Execute(cmd *cobra.Command, args []string) error {
	sources, err := pc.analyzer.Sources(args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		warnNoSources()
		return nil
	}

	var progress *ui.ProgressBar
	if !pc.config.Flags.JSON {
		progress = ui.NewProgressBar(len(sources))
	}

	runResult, runErr := pc.analyzer.Run(cmd.Context(), sources, progressOrNil(progress))
	if runErr != nil && !errors.Is(runErr, errNoSources) {
		return runErr
	}

	rep := pc.analyzer.Organize(runResult)
	output := storage.NewOutput(runResult, rep)

	if err := pc.storage.SaveOutput(output); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	if pc.config.Flags.JSON {
		if err := writeJSON(os.Stdout, output); err != nil {
			return err
		}
	} else {
		pc.formatter.PrintMetaStats(output)
		pc.formatter.PrintSourceFailures(output.SourceFailures)
	}
	return runErr
}
