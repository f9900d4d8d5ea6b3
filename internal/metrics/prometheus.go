// Package metrics exposes the payment lifecycle counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector implements payment.MetricsCollector on top of a
// prometheus registry.
type PrometheusCollector struct {
	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.CounterVec
	operationErrors   *prometheus.CounterVec
	creditsGranted    prometheus.Counter
	settlements       prometheus.Counter
	orphanSettlements prometheus.Counter
}

// NewPrometheusCollector registers the payment metrics with the default
// registry.
func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		operationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "krouai_payment_operation_duration_seconds",
			Help:    "Duration of payment operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		operationResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "krouai_payment_operation_results_total",
			Help: "Payment operation outcomes.",
		}, []string{"operation", "result"}),
		operationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "krouai_payment_operation_errors_total",
			Help: "Payment operation errors by type.",
		}, []string{"operation", "type"}),
		creditsGranted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "krouai_payment_credits_granted_total",
			Help: "Credits granted by settlements.",
		}),
		settlements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "krouai_payment_settlements_total",
			Help: "Settlements applied.",
		}),
		orphanSettlements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "krouai_payment_orphan_settlements_total",
			Help: "Paid hashes with no matching payment record.",
		}),
	}
}

func (c *PrometheusCollector) RecordOperationDuration(operation string, d time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordOperationResult(operation, result string) {
	c.operationResults.WithLabelValues(operation, result).Inc()
}

func (c *PrometheusCollector) RecordError(operation, errType string) {
	c.operationErrors.WithLabelValues(operation, errType).Inc()
}

func (c *PrometheusCollector) RecordSettlement(credits int) {
	c.settlements.Inc()
	c.creditsGranted.Add(float64(credits))
}

func (c *PrometheusCollector) RecordOrphanSettlement() {
	c.orphanSettlements.Inc()
}
