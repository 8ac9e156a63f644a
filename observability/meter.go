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

	"github.com/kbukum/scribe/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it globally.
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

// DispatchMetrics holds the instruments recorded while a batch is dispatched.
// A nil *DispatchMetrics is valid and records nothing.
type DispatchMetrics struct {
	chunksTotal   metric.Int64Counter
	chunkDuration metric.Float64Histogram
	chunksActive  metric.Int64UpDownCounter
	batchesTotal  metric.Int64Counter
}

// NewDispatchMetrics creates metric instruments on the given meter.
func NewDispatchMetrics(meter metric.Meter) (*DispatchMetrics, error) {
	chunksTotal, err := meter.Int64Counter("transcription.chunks",
		metric.WithDescription("Chunks sent to the provider, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.chunks counter: %w", err)
	}

	chunkDuration, err := meter.Float64Histogram("transcription.chunk.duration",
		metric.WithDescription("Provider round trip per chunk in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.chunk.duration histogram: %w", err)
	}

	chunksActive, err := meter.Int64UpDownCounter("transcription.chunks.active",
		metric.WithDescription("Provider calls currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.chunks.active gauge: %w", err)
	}

	batchesTotal, err := meter.Int64Counter("transcription.batches",
		metric.WithDescription("Dispatched batches, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.batches counter: %w", err)
	}

	return &DispatchMetrics{
		chunksTotal:   chunksTotal,
		chunkDuration: chunkDuration,
		chunksActive:  chunksActive,
		batchesTotal:  batchesTotal,
	}, nil
}

// ChunkStarted increments the in-flight count once a chunk holds a slot.
func (m *DispatchMetrics) ChunkStarted(ctx context.Context) {
	if m == nil {
		return
	}
	m.chunksActive.Add(ctx, 1)
}

// ChunkFinished decrements the in-flight count and records the chunk outcome.
func (m *DispatchMetrics) ChunkFinished(ctx context.Context, provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.chunksActive.Add(ctx, -1)
	m.chunksTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.chunkDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

// BatchFinished records a completed dispatch.
func (m *DispatchMetrics) BatchFinished(ctx context.Context, provider, status string) {
	if m == nil {
		return
	}
	m.batchesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
}
