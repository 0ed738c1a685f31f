package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_operations_total",
		Help: "Unified operations dispatched, by operation and result.",
	},
	[]string{"operation", "result"},
)

var operationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gateway_operation_duration_seconds",
		Help:    "Latency of unified operations, backend calls included.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation"},
)

func observe(op Operation, start time.Time, err error) {
	result := resultOK
	if err != nil {
		result = resultError
	}

	operationsTotal.WithLabelValues(string(op), result).Inc()
	operationDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
}
