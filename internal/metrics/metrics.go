package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application.
// It includes counters for handled requests and created records,
// and histograms for request, database query and report durations.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec   // Counter for handled requests
	HTTPDuration     *prometheus.HistogramVec // Histogram for request durations
	DBQueryDuration  *prometheus.HistogramVec // Histogram for database query durations
	EmployeesCreated prometheus.Counter       // Counter for employees added to the directory
	ShiftsCreated    prometheus.Counter       // Counter for shifts added to the calendar
	ReportGeneration *prometheus.HistogramVec // Histogram for excel report durations
}

// NewMetrics creates a new Metrics instance with the provided Prometheus Registerer.
//
// Parameters:
//   - reg: A Prometheus Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "shiftbook_http_requests_total",
			Help: "Total number of handled HTTP requests",
		}, []string{"route", "code"}), // route: mux pattern, code: 200, 302, 404...
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shiftbook_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shiftbook_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'list_employees', 'shifts_between'
		EmployeesCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "shiftbook_employees_created_total",
			Help: "Total number of employees added",
		}),
		ShiftsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "shiftbook_shifts_created_total",
			Help: "Total number of shifts added",
		}),
		ReportGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "shiftbook_report_generation_duration_seconds",
			Help: "Duration of monthly excel report generation.",
		}, []string{"source"}), // source: http
	}
}
