package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	monitoringReadTimeout  = 5 * time.Second
	monitoringWriteTimeout = 10 * time.Second
)

// NewMonitoringHandler returns the mux serving /healthz and /metrics.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, dtb DBPinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /healthz", NewHealthChecker(log, dtb))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return mux
}

// StartMonitoringServer serves the monitoring endpoints on port until ctx
// is canceled. Failures are logged, the web application keeps running
// without its monitoring side.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb DBPinger,
	port int,
) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      NewMonitoringHandler(log, reg, dtb),
		ReadTimeout:  monitoringReadTimeout,
		WriteTimeout: monitoringWriteTimeout,
	}

	if err := serveUntilDone(ctx, srv); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "port", port, "error", err)
	}
}

func serveUntilDone(ctx context.Context, srv *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), monitoringReadTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown: %w", err)
		}
		return nil
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
