package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/calendar"
	"github.com/UnknownOlympus/shiftbook/internal/config"
	"github.com/UnknownOlympus/shiftbook/internal/models"
	"github.com/UnknownOlympus/shiftbook/internal/report"
	"github.com/UnknownOlympus/shiftbook/internal/repository"
	"github.com/spf13/cobra"
)

// shiftSource is the part of the repository the export needs.
type shiftSource interface {
	GetShiftsBetween(ctx context.Context, from, to time.Time) ([]models.ShiftEntry, error)
}

func newExportCommand() *cobra.Command {
	var (
		period string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the shifts of a month to an Excel workbook",
		Long: `Write the shifts of a month to an Excel workbook.

Examples:
  shiftbook export --period 202405                   # writes shifts-202405.xlsx
  shiftbook export --period 202405 --out may.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			month, err := calendar.ParseMonth(period)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("shifts-%s.xlsx", month.Token())
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			dtb, err := repository.NewDatabase(ctx, cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to connect to DB: %w", err)
			}
			defer dtb.Close()

			if err = exportMonth(ctx, repository.NewRepository(dtb), month, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "Month to export as YYYYMM")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default shifts-YYYYMM.xlsx)")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func exportMonth(ctx context.Context, src shiftSource, month calendar.Month, out string) error {
	entries, err := src.GetShiftsBetween(ctx, month.First(), month.Last())
	if err != nil {
		return fmt.Errorf("failed to get shifts of %s: %w", month, err)
	}

	buffer, err := report.GenerateMonthlyReport(month, entries)
	if err != nil {
		return fmt.Errorf("failed to generate report for %s: %w", month, err)
	}

	const filePerm = 0o644
	if err = os.WriteFile(out, buffer.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	return nil
}
