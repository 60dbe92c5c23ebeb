package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"logsift/internal/cli"
	"logsift/internal/config"
	"logsift/internal/discovery"
	"logsift/internal/domain"
	"logsift/internal/ingest"
	"logsift/internal/logging"
	"logsift/internal/report"
	"logsift/internal/storage"
	"logsift/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errNoSources is returned when every source of a run failed to ingest
var errNoSources = errors.New("no log source could be ingested")

// Commands holds all CLI commands
type Commands struct {
	Parse  *ParseCommand
	Run    *RunCommand
	Report *ReportCommand
	View   *ViewCommand
	Export *ExportCommand
	DB     *DBCommand
	Watch  *WatchCommand
}

// NewCommands creates all commands with dependencies. Components that depend
// on loaded settings are built per invocation from cfg.
func NewCommands(cfg *config.Config) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(nil)
	analyzer := NewAnalyzer(cfg)

	return &Commands{
		Parse:  NewParseCommand(cfg, analyzer, jsonStorage, formatter),
		Run:    NewRunCommand(cfg, analyzer, jsonStorage, formatter),
		Report: NewReportCommand(jsonStorage, formatter),
		View:   NewViewCommand(jsonStorage, ui.NewReportViewer()),
		Export: NewExportCommand(cfg, analyzer),
		DB:     NewDBCommand(cfg, analyzer, storage.NewMySQLStore(cfg)),
		Watch:  NewWatchCommand(cfg, analyzer, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		logging.Init(logging.ParseLevel(cfg.LogLevel))
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.Strict, "strict", false, "Only accept lines starting with a 'YYYY-MM-DD HH:MM:SS' timestamp")
	pf.IntVarP(&flags.Workers, "workers", "p", 0, "Number of classification workers (default from config, 1)")
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file (default ./"+config.DefaultConfigFile+" if present)")
	pf.StringVar(&flags.EnvFile, "env-file", "", "Path to a .env file (default ./"+config.DefaultEnvFile+" if present)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging on stderr")

	parseCmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Classify log files and save an organized report",
		Long:  "Ingest log files, directories or glob patterns, classify every line, organize the records into report buckets and save the report as JSON",
		RunE:  c.Parse.Execute,
	}
	parseCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter sources by file name (supports wildcards, e.g. '*pytest*.log')")
	parseCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the report as JSON to stdout instead of the statistics table")
	rootCmd.AddCommand(parseCmd)

	runCmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a test command and classify its output",
		Long:  "Execute a test command, stream its combined output through the classifier and save the organized report. Exits non-zero when the command does",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().SetInterspersed(false)
	runCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the report as JSON to stdout instead of the command output and statistics")
	rootCmd.AddCommand(runCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the last saved report",
		Args:  cobra.NoArgs,
		RunE:  c.Report.Execute,
	}
	rootCmd.AddCommand(reportCmd)

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the last saved report interactively",
		Args:  cobra.NoArgs,
		RunE:  c.View.Execute,
	}
	rootCmd.AddCommand(viewCmd)

	exportCmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Export classified records as JSON Lines documents",
		Long:  "Ingest log sources and write one document per record, with page_content text and metadata, for search indexing",
		RunE:  c.Export.Execute,
	}
	exportCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter sources by file name (supports wildcards)")
	exportCmd.Flags().StringVarP(&flags.Out, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)

	dbCmd := &cobra.Command{
		Use:   "db [paths...]",
		Short: "Store classified records in MySQL",
		Long:  "Ingest log sources and insert every record into the log_records table, creating the database and table if needed",
		RunE:  c.DB.Execute,
	}
	dbCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter sources by file name (supports wildcards)")
	rootCmd.AddCommand(dbCmd)

	watchCmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-classify a log file whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Watch.Execute,
	}
	rootCmd.AddCommand(watchCmd)
}

// Analyzer ingests sources and organizes their records with the loaded configuration
type Analyzer struct {
	config *config.Config
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Sources resolves command arguments to log sources; no arguments means the current directory
func (a *Analyzer) Sources(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	scanner := discovery.NewScanner(a.config.LogSuffixes, a.config.PathsToIgnore)
	resolver := discovery.NewResolver(scanner, discovery.NewFilter())
	return resolver.Resolve(args, a.config.Flags.NameFilter)
}

// Pipeline returns an ingestion pipeline for the loaded configuration
func (a *Analyzer) Pipeline() *ingest.Pipeline {
	return ingest.New(ingest.Options{
		Mode:           a.config.ParsedMode(),
		Levels:         a.config.Levels,
		Workers:        a.config.Workers,
		KeepBlankLines: a.config.KeepBlankLines,
		MaxLineLength:  a.config.MaxLineLength,
	})
}

// Run ingests paths, reporting per-source progress when progress is non-nil
func (a *Analyzer) Run(ctx context.Context, paths []string, progress ingest.Progress) (*domain.Run, error) {
	pipeline := a.Pipeline()
	if progress != nil {
		pipeline.SetProgress(progress)
	}
	run := pipeline.IngestSources(ctx, paths)
	if err := ctx.Err(); err != nil {
		return run, fmt.Errorf("run interrupted: %w", err)
	}
	if len(run.Sources) > 0 && len(run.Failed()) == len(run.Sources) {
		return run, errNoSources
	}
	return run, nil
}

// Organize buckets the records of run
func (a *Analyzer) Organize(run *domain.Run) *domain.Report {
	organizer := report.NewOrganizer(report.Options{
		Mode:                 a.config.ParsedMode(),
		LongRunningThreshold: a.config.LongRunningThreshold,
	})
	return organizer.Organize(run.Records())
}

// progressOrNil keeps a nil *ui.ProgressBar from becoming a non-nil interface
func progressOrNil(bar *ui.ProgressBar) ingest.Progress {
	if bar == nil {
		return nil
	}
	return bar
}

func writeJSON(w io.Writer, output *domain.ReportOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func warnNoSources() {
	color.Yellow("No log files found")
}
