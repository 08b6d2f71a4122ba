package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/calendar"
	"github.com/UnknownOlympus/shiftbook/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportMonthlyShift(w http.ResponseWriter, r *http.Request) {
	month := calendar.MonthOrCurrent(r.PathValue("period"), s.today())

	done := s.observeQuery("shifts_between")
	entries, err := s.repo.GetShiftsBetween(r.Context(), month.First(), month.Last())
	done()
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to get shifts of %s: %w", month, err))
		return
	}

	start := time.Now()
	buffer, err := report.GenerateMonthlyReport(month, entries)
	s.metrics.ReportGeneration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to generate report for %s: %w", month, err))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="shifts-%s.xlsx"`, month.Token()))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	_, _ = buffer.WriteTo(w)
}
