package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"logsift/internal/cli"
	"logsift/internal/cli/commands"
	"logsift/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "logsift",
		Short:   "Test and CI log classifier",
		Long:    `Classify test and CI log output line by line into typed records, reattach stack traces to the entries that produced them and organize the result into report buckets (failures, errors, warnings, long-running tests, stack traces and more).`,
		Version: version,
	}

	// Create initial config with defaults; replaced once flags are parsed
	cfg := config.New()

	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
