// Package observability provides OpenTelemetry tracing and metrics for
// transcription batches.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("scribe"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanBatch)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("scribe"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewDispatchMetrics(observability.Meter("scribe"))
//	metrics.ChunkFinished(ctx, "openai", observability.StatusOK, duration)
//
// Both providers are optional. Without them the global otel providers are
// no-ops and every helper here is safe to call.
package observability
