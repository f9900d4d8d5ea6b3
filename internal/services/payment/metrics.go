package payment

import "time"

// MetricsCollector records what happens to payments as they move through
// the lifecycle.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordError(operation, errType string)
	RecordSettlement(credits int)
	RecordOrphanSettlement()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
func (n *NoopMetricsCollector) RecordSettlement(int)                          {}
func (n *NoopMetricsCollector) RecordOrphanSettlement()                       {}
