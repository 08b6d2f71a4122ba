package web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/shiftbook/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_ResponseController(t *testing.T) {
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		rc := http.NewResponseController(w)
		w.WriteHeader(http.StatusAccepted)
		require.NoError(t, rc.Flush())
	}), Instrument(logger, appMetrics, "GET /ping"))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.True(t, rr.Flushed)
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.HTTPRequests.WithLabelValues("GET /ping", "202")), 0)
}
