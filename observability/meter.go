package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/dotfiles/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments for command executions and bootstrap steps.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	runs        metric.Int64Counter
	runDuration metric.Float64Histogram
	streams     metric.Int64Counter
	signals     metric.Int64Counter
	steps       metric.Int64Counter
	errorTotal  metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runs, err := meter.Int64Counter("process.runs",
		metric.WithDescription("Total number of synchronous command runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating process.runs counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("process.run.duration",
		metric.WithDescription("Duration of synchronous command runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating process.run.duration histogram: %w", err)
	}

	streams, err := meter.Int64Counter("process.streams",
		metric.WithDescription("Total number of streamed commands started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating process.streams counter: %w", err)
	}

	signals, err := meter.Int64Counter("process.signals",
		metric.WithDescription("Total number of interrupt signals sent to streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating process.signals counter: %w", err)
	}

	steps, err := meter.Int64Counter("bootstrap.steps",
		metric.WithDescription("Total number of bootstrap steps executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bootstrap.steps counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		runs:        runs,
		runDuration: runDuration,
		streams:     streams,
		signals:     signals,
		steps:       steps,
		errorTotal:  errorTotal,
	}, nil
}

// RecordRun records a completed synchronous run.
func (m *Metrics) RecordRun(ctx context.Context, program, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runs.Add(ctx, 1, metric.WithAttributes(
		attribute.String("program", program),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("program", program),
	))
}

// RecordStream records a stream spawn attempt.
func (m *Metrics) RecordStream(ctx context.Context, program, status string) {
	if m == nil {
		return
	}
	m.streams.Add(ctx, 1, metric.WithAttributes(
		attribute.String("program", program),
		attribute.String("status", status),
	))
}

// RecordSignal records an interrupt delivery attempt.
func (m *Metrics) RecordSignal(ctx context.Context, program, status string) {
	if m == nil {
		return
	}
	m.signals.Add(ctx, 1, metric.WithAttributes(
		attribute.String("program", program),
		attribute.String("status", status),
	))
}

// RecordStep records a finished bootstrap step.
func (m *Metrics) RecordStep(ctx context.Context, step, status string) {
	if m == nil {
		return
	}
	m.steps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
