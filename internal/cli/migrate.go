package cli

import (
	"fmt"
	"os"

	"github.com/UnknownOlympus/shiftbook/internal/config"
	"github.com/UnknownOlympus/shiftbook/internal/repository"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the employees and shifts tables",
		Long: `Create the employees and shifts tables when they do not exist yet.
Running it again on an existing schema changes nothing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := setupLogger(os.Stdout, cfg.Env)

			dtb, err := repository.NewDatabase(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to connect to DB: %w", err)
			}
			defer dtb.Close()

			if err = repository.Migrate(ctx, dtb); err != nil {
				return err
			}

			logger.InfoContext(ctx, "Schema is up to date")
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return nil
		},
	}
}
