package otel

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/labstats/internal/ports"
)

const (
	serviceName    = "labstats"
	serviceVersion = "1.0.0"
)

// Exporter exports statistics engine metrics to an OTEL Collector.
// A disabled Exporter accepts every call and records nothing.
type Exporter struct {
	provider        *sdkmetric.MeterProvider
	computations    metric.Int64Counter
	failures        metric.Int64Counter
	summariesTotal  metric.Int64Counter
	dataPointsTotal metric.Int64Counter
	durationHist    metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter. It returns a disabled
// exporter when cfg turns export off or names no endpoint.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return &Exporter{}, nil
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	e, err := newExporter(sdkmetric.NewPeriodicReader(exp), res)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(e.provider)
	return e, nil
}

func newExporter(reader sdkmetric.Reader, res *resource.Resource) (*Exporter, error) {
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	computations, err := meter.Int64Counter(
		"labstats_computations_total",
		metric.WithDescription("Statistics calls served, by scope"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating computations counter: %w", err)
	}

	failures, err := meter.Int64Counter(
		"labstats_computation_failures_total",
		metric.WithDescription("Statistics calls that returned an error"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	summariesTotal, err := meter.Int64Counter(
		"labstats_summaries_total",
		metric.WithDescription("Statistics summaries produced"),
		metric.WithUnit("{summary}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating summaries counter: %w", err)
	}

	dataPointsTotal, err := meter.Int64Counter(
		"labstats_data_points_total",
		metric.WithDescription("Measurement records aggregated"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating data points counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"labstats_computation_duration_seconds",
		metric.WithDescription("Statistics call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Exporter{
		provider:        provider,
		computations:    computations,
		failures:        failures,
		summariesTotal:  summariesTotal,
		dataPointsTotal: dataPointsTotal,
		durationHist:    durationHist,
	}, nil
}

// ExportComputation records one completed statistics call.
func (e *Exporter) ExportComputation(ctx context.Context, m *ports.ComputationMetrics) error {
	if !e.Enabled() {
		return nil
	}
	opt := metric.WithAttributes(
		attribute.String("scope", m.Scope),
		attribute.String("failed", strconv.FormatBool(m.Failed)),
	)

	e.computations.Add(ctx, 1, opt)
	e.durationHist.Record(ctx, m.Duration.Seconds(), opt)
	if m.Failed {
		e.failures.Add(ctx, 1, opt)
		return nil
	}
	e.summariesTotal.Add(ctx, int64(m.Summaries), opt)
	e.dataPointsTotal.Add(ctx, int64(m.DataPoints), opt)

	return nil
}

// Enabled reports whether metrics reach a collector.
func (e *Exporter) Enabled() bool {
	return e.provider != nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	if !e.Enabled() {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
