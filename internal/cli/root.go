// Package cli wires the shiftbook commands: the web application server,
// schema migration and the monthly Excel export.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the shiftbook command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shiftbook",
		Short: "Employee shift scheduling web application",
		Long: `shiftbook keeps an employee directory and a shift calendar in PostgreSQL
and serves them as server-rendered pages.

Configuration is read from the environment (and an optional .env file or
YAML file at CONFIG_PATH). See the serve command for the variables.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand(), newMigrateCommand(), newExportCommand())

	return rootCmd
}

// Execute runs the root command until it finishes or an interrupt arrives.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
