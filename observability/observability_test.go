package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("scribe")

	if cfg.ServiceName != "scribe" {
		t.Errorf("expected ServiceName 'scribe', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("scribe")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
			if got := samplerFor(tc.rate).Description(); got != tc.want {
				t.Errorf("samplerFor(%v) = %q, want %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestEndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	tracer := tp.Tracer("test")

	_, ok := tracer.Start(context.Background(), SpanChunk)
	EndSpan(ok, nil)
	_, failed := tracer.Start(context.Background(), SpanChunk)
	EndSpan(failed, fmt.Errorf("boom"))

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if !hasAttr(spans[0].Attributes, AttrStatus, StatusOK) {
		t.Errorf("expected status=ok on first span, got %v", spans[0].Attributes)
	}
	if spans[1].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[1].Status.Code)
	}
	if len(spans[1].Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func hasAttr(attrs []attribute.KeyValue, key, value string) bool {
	for _, kv := range attrs {
		if string(kv.Key) == key && kv.Value.AsString() == value {
			return true
		}
	}
	return false
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), SpanBatch)
	defer span.End()

	if span == nil {
		t.Fatal("expected non-nil span")
	}
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected span in context")
	}
}

func TestDispatchMetrics_Noop(t *testing.T) {
	metrics, err := NewDispatchMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.ChunkStarted(ctx)
	metrics.ChunkFinished(ctx, "openai", StatusOK, time.Second)
	metrics.BatchFinished(ctx, "openai", StatusOK)
}

func TestDispatchMetrics_NilIsSafe(t *testing.T) {
	var m *DispatchMetrics
	ctx := context.Background()
	m.ChunkStarted(ctx)
	m.ChunkFinished(ctx, "openai", StatusError, 0)
	m.BatchFinished(ctx, "openai", StatusError)
}

func TestDispatchMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewDispatchMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		metrics.ChunkStarted(ctx)
	}
	metrics.ChunkFinished(ctx, "mistral", StatusOK, 10*time.Millisecond)
	metrics.ChunkFinished(ctx, "mistral", StatusError, 20*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					got[m.Name] += dp.Value
				}
			}
		}
	}

	if got["transcription.chunks"] != 2 {
		t.Errorf("expected 2 finished chunks, got %d", got["transcription.chunks"])
	}
	if got["transcription.chunks.active"] != 1 {
		t.Errorf("expected 1 chunk still active, got %d", got["transcription.chunks.active"])
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected no-op shutdown, got %v", err)
	}
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultTracerConfig("scribe")
	cfg.Environment = "test"

	tp, err := InitTracer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("scribe")
	cfg.Interval = 0

	mp, err := InitMeter(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
