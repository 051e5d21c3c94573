package ports

import (
	"context"
	"time"
)

// MetricsExporter exports statistics engine activity to an external observability system.
type MetricsExporter interface {
	// ExportComputation records one completed statistics call.
	ExportComputation(ctx context.Context, m *ComputationMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// ComputationMetrics describes a single statistics call.
type ComputationMetrics struct {
	Scope      string
	Summaries  int
	DataPoints int
	Duration   time.Duration
	Failed     bool
}
