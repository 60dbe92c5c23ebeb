package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"logsift/internal/config"
	"logsift/internal/storage"
)

// DBCommand handles the db command
type DBCommand struct {
	config   *config.Config
	analyzer *Analyzer
	store    *storage.MySQLStore
}

// NewDBCommand creates a new DBCommand
func NewDBCommand(cfg *config.Config, analyzer *Analyzer, store *storage.MySQLStore) *DBCommand {
	return &DBCommand{
		config:   cfg,
		analyzer: analyzer,
		store:    store,
	}
}

// Execute runs the command
func (dc *DBCommand) Execute(cmd *cobra.Command, args []string) error {
	sources, err := dc.analyzer.Sources(args)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		warnNoSources()
		return nil
	}

	ctx := cmd.Context()
	defer dc.store.Close()
	if err := dc.store.Open(ctx); err != nil {
		return err
	}

	run, err := dc.analyzer.Run(ctx, sources, nil)
	if err != nil {
		return err
	}

	n, err := dc.store.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	color.Green("✓ Stored %d record(s) from %d source(s) in %s (run %s)",
		n, len(run.Sources)-len(run.Failed()), dc.config.Database.Name, run.ID)
	for _, src := range run.Failed() {
		color.Yellow("  skipped %s: %v", src.Path, src.Err)
	}
	return nil
}
