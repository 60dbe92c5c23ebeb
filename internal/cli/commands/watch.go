package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"logsift/internal/config"
	"logsift/internal/storage"
	"logsift/internal/ui"
)

// watchDebounce coalesces bursts of writes into one re-ingestion
const watchDebounce = 250 * time.Millisecond

// WatchCommand handles the watch command
type WatchCommand struct {
	config    *config.Config
	analyzer  *Analyzer
	formatter *ui.Formatter
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, analyzer *Analyzer, formatter *ui.Formatter) *WatchCommand {
	return &WatchCommand{
		config:    cfg,
		analyzer:  analyzer,
		formatter: formatter,
	}
}

// Execute runs the command until interrupted
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	target, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory so rotation and editor replace-on-save are seen
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	ctx := cmd.Context()
	color.Cyan("Watching %s (Ctrl+C to stop)", target)
	wc.refresh(ctx, target)

	return watchLoop(ctx, fsw.Events, fsw.Errors, target, watchDebounce, func() {
		wc.refresh(ctx, target)
	})
}

func (wc *WatchCommand) refresh(ctx context.Context, target string) {
	run, err := wc.analyzer.Run(ctx, []string{target}, nil)
	if err != nil {
		if errors.Is(err, errNoSources) {
			for _, src := range run.Failed() {
				color.Yellow("%s: %v", src.Path, src.Err)
			}
		}
		return
	}
	wc.formatter.PrintMetaStats(storage.NewOutput(run, wc.analyzer.Organize(run)))
}

// watchLoop calls onChange once per burst of relevant events until ctx is done
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, debounce time.Duration, onChange func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(ev, target) {
				continue
			}
			slog.Debug("watch event", "path", ev.Name, "op", ev.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			pending = true
		case <-timer.C:
			pending = false
			onChange()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)
		}
	}
}

// relevant reports whether ev changes the contents of target
func relevant(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}
