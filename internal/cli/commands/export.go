package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"logsift/internal/config"
	"logsift/internal/export"
)

// ExportCommand handles the export command
type ExportCommand struct {
	config   *config.Config
	analyzer *Analyzer
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(cfg *config.Config, analyzer *Analyzer) *ExportCommand {
	return &ExportCommand{
		config:   cfg,
		analyzer: analyzer,
	}
}

// Execute runs the command
func (ec *ExportCommand) Execute(cmd *cobra.Command, args []string) error {
	sources, err := ec.analyzer.Sources(args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		warnNoSources()
		return nil
	}

	run, err := ec.analyzer.Run(cmd.Context(), sources, nil)
	if err != nil {
		return err
	}
	docs := export.Documents(run.Records())

	var out io.Writer = os.Stdout
	if path := ec.config.Flags.Out; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := export.WriteJSONL(w, docs); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write documents: %w", err)
	}

	slog.Info("exported documents", "run_id", run.ID, "documents", len(docs), "failed_sources", len(run.Failed()))
	return nil
}
