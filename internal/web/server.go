// Package web serves the shift book pages: the employee directory, the
// monthly and daily shift calendars and the Excel export.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/calendar"
	"github.com/UnknownOlympus/shiftbook/internal/i18n"
	"github.com/UnknownOlympus/shiftbook/internal/metrics"
	"github.com/UnknownOlympus/shiftbook/internal/repository"
)

//go:embed templates/*.html assets/app.css
var templatesFS embed.FS

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server holds the dependencies shared by every handler. It keeps no
// per-request state; the repository is the only source of truth.
type Server struct {
	repo      repository.Interface
	log       *slog.Logger
	metrics   *metrics.Metrics
	localizer *i18n.Localizer
	location  *time.Location
	now       func() time.Time
	pages     map[string]*template.Template
}

// NewServer parses the embedded templates and returns a ready Server.
// location decides which calendar day "today" is.
func NewServer(
	log *slog.Logger,
	repo repository.Interface,
	appMetrics *metrics.Metrics,
	localizer *i18n.Localizer,
	location *time.Location,
) (*Server, error) {
	s := &Server{
		repo:      repo,
		log:       log,
		metrics:   appMetrics,
		localizer: localizer,
		location:  location,
		now:       time.Now,
	}

	pages, err := parsePages(s.templateFuncs())
	if err != nil {
		return nil, err
	}
	s.pages = pages

	return s, nil
}

// Handler returns the routed and wrapped handler of the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /{$}", s.top)
	s.handle(mux, "GET /employee", s.employeeList)
	s.handle(mux, "GET /add_employee", s.addEmployee)
	s.handle(mux, "POST /add_employee_commit", s.addEmployeeCommit)
	s.handle(mux, "POST /edit_employee", s.editEmployee)
	s.handle(mux, "POST /edit_employee_commit", s.editEmployeeCommit)
	s.handle(mux, "POST /del_employee", s.delEmployee)
	s.handle(mux, "POST /del_employee_commit", s.delEmployeeCommit)

	s.handle(mux, "GET /show_monthly_shift", s.showMonthlyShift)
	s.handle(mux, "GET /show_monthly_shift/{period}", s.showMonthlyShift)
	s.handle(mux, "GET /show_monthly_shift/{$}", s.showMonthlyShift)
	s.handle(mux, "GET /show_daily_shift", s.showDailyShift)
	s.handle(mux, "GET /show_daily_shift/{date}", s.showDailyShift)
	s.handle(mux, "GET /show_daily_shift/{$}", s.showDailyShift)
	s.handle(mux, "GET /add_daily_shift", s.addDailyShift)
	s.handle(mux, "GET /add_daily_shift/{date}", s.addDailyShift)
	s.handle(mux, "GET /add_daily_shift/{$}", s.addDailyShift)
	s.handle(mux, "POST /add_daily_shift_commit", s.addDailyShiftCommit)
	s.handle(mux, "POST /del_daily_shift", s.delDailyShift)

	s.handle(mux, "GET /export_monthly_shift", s.exportMonthlyShift)
	s.handle(mux, "GET /export_monthly_shift/{period}", s.exportMonthlyShift)
	s.handle(mux, "GET /export_monthly_shift/{$}", s.exportMonthlyShift)

	s.handle(mux, "GET /assets/app.css", s.appCSSFile)
	s.handle(mux, "/", s.notFound)

	csp := strings.Join([]string{
		"default-src 'self'",
		"style-src 'self'",
		"img-src 'self' data:",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	return Chain(
		mux,
		SecurityHeaders(SecurityHeadersConfig{ContentSecurityPolicy: csp}),
	)
}

func (s *Server) handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	mux.Handle(pattern, Chain(handler, Instrument(s.log, s.metrics, pattern)))
}

// Run serves the application on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "Starting web server", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.InfoContext(ctx, "Web server shutting down.")
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// today returns the current calendar date in the configured location.
func (s *Server) today() time.Time {
	return calendar.Today(s.now().In(s.location))
}

// observeQuery starts a database timer; call the returned function when the query is done.
func (s *Server) observeQuery(queryType string) func() {
	start := time.Now()
	return func() {
		s.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) lang(r *http.Request) string {
	return s.localizer.Negotiate(r.Header.Get("Accept-Language"))
}

func (s *Server) appCSSFile(w http.ResponseWriter, _ *http.Request) {
	css, err := templatesFS.ReadFile("assets/app.css")
	if err != nil {
		http.Error(w, "asset not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(css)
}
