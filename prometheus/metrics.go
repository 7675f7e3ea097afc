package prometheus

import (
	"time"

	"volunteer-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Volunteer metrics
	VolunteerOperationsCounter prometheus.CounterVec
	ValidationFailuresCounter  prometheus.CounterVec
	ConflictsCounter           prometheus.CounterVec

	// Total volunteer applications stored
	TotalVolunteersGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Volunteer metrics
	VolunteerOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of volunteer operations",
		},
		[]string{"operation"},
	)

	ValidationFailuresCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_validation_failures_total",
			Help: "Total number of validation failures by field",
		},
		[]string{"field"},
	)

	ConflictsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_conflicts_total",
			Help: "Total number of duplicate email/phone conflicts",
		},
		[]string{"field"},
	)

	// Total volunteer applications stored
	TotalVolunteersGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_volunteers_total",
			Help: "Total number of volunteer applications stored",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordVolunteerOperation increments the counter for volunteer operations
func RecordVolunteerOperation(operation string) {
	VolunteerOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordValidationFailure increments the validation failure counter for a field
func RecordValidationFailure(field string) {
	ValidationFailuresCounter.WithLabelValues(field).Inc()
}

// RecordConflict increments the conflict counter for a field
func RecordConflict(field string) {
	ConflictsCounter.WithLabelValues(field).Inc()
}

// UpdateTotalVolunteers updates the total volunteers gauge
func UpdateTotalVolunteers(count int64) {
	TotalVolunteersGauge.Set(float64(count))
}
