package logging

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsRegistry holds the sink's own metrics, separate from the
// default registry so embedding applications keep full control over
// what they expose.
var metricsRegistry = prometheus.NewRegistry()

var (
	recordsWritten = promauto.With(metricsRegistry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "logsink",
		Name:      "records_written_total",
		Help:      "Log records emitted, by level and appender.",
	}, []string{"level", "appender"})

	recordsFiltered = promauto.With(metricsRegistry).NewCounter(prometheus.CounterOpts{
		Namespace: "logsink",
		Name:      "records_filtered_total",
		Help:      "Log records rejected by the target filter.",
	})

	fileRotations = promauto.With(metricsRegistry).NewCounter(prometheus.CounterOpts{
		Namespace: "logsink",
		Name:      "file_rotations_total",
		Help:      "Daily logfile rotations performed.",
	})

	fileWriteErrors = promauto.With(metricsRegistry).NewCounter(prometheus.CounterOpts{
		Namespace: "logsink",
		Name:      "file_write_errors_total",
		Help:      "Failed writes to the rolling logfile.",
	})
)

// MetricsHandler returns an HTTP handler serving the sink's Prometheus
// metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})
}
