package cli

import (
	"fmt"
	"os"

	"github.com/UnknownOlympus/shiftbook/internal/config"
	"github.com/UnknownOlympus/shiftbook/internal/i18n"
	"github.com/UnknownOlympus/shiftbook/internal/metrics"
	"github.com/UnknownOlympus/shiftbook/internal/repository"
	"github.com/UnknownOlympus/shiftbook/internal/server"
	"github.com/UnknownOlympus/shiftbook/internal/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web application and the monitoring server",
		Long: `Run the web application and the monitoring server (/healthz, /metrics).

Environment:
  SHIFTBOOK_ENV     local, development or production (logging)
  DATABASE_URL      PostgreSQL URL, or DB_HOST/DB_PORT/DB_USERNAME/DB_PASSWORD/DB_NAME
  HTTP_ADDR         listen address of the application (default :8080)
  MONITORING_PORT   port of the monitoring server (default 9090)
  DEFAULT_LANG      ja or en (default ja)
  TIMEZONE          IANA zone deciding what "today" is (default Local)
  AUTO_MIGRATE      create missing tables on start`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := setupLogger(os.Stdout, cfg.Env)

			// Create a separate registry for metrics
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			appMetrics := metrics.NewMetrics(reg)

			dtb, err := repository.NewDatabase(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to connect to DB: %w", err)
			}
			defer dtb.Close()

			if cfg.AutoMigrate {
				if err = repository.Migrate(ctx, dtb); err != nil {
					return err
				}
				logger.InfoContext(ctx, "Schema is up to date")
			}

			localizer, err := i18n.NewLocalizer(cfg.DefaultLang)
			if err != nil {
				return err
			}

			srv, err := web.NewServer(logger, repository.NewRepository(dtb), appMetrics, localizer, cfg.Location)
			if err != nil {
				return fmt.Errorf("failed to create web server: %w", err)
			}

			go server.StartMonitoringServer(ctx, logger, reg, dtb, cfg.MonitoringPort)

			logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")
			if err = srv.Run(ctx, cfg.HTTPAddr); err != nil {
				return fmt.Errorf("web server failed: %w", err)
			}
			logger.InfoContext(ctx, "Application stopped gracefully.")

			return nil
		},
	}
}
