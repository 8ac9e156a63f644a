package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/resilience"
	"github.com/kbukum/scribe/transcription"
)

// ProgressFunc is called once per successfully transcribed chunk with the
// number of successes so far and the batch size. Calls may arrive in any
// chunk order and from several goroutines.
type ProgressFunc func(completed, total int)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithMetrics records per-chunk and per-batch metrics.
func WithMetrics(m *observability.DispatchMetrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// Dispatcher runs batches of chunks against one adapter.
// It is safe for concurrent use; each Dispatch call gets its own slots.
type Dispatcher struct {
	adapter transcription.Adapter
	config  Config
	limiter *resilience.RateLimiter
	log     *logger.Logger
	metrics *observability.DispatchMetrics
}

// New creates a dispatcher for adapter.
func New(adapter transcription.Adapter, cfg Config, opts ...Option) (*Dispatcher, error) {
	if adapter == nil {
		return nil, errors.MissingField("adapter")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		adapter: adapter,
		config:  cfg,
	}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = logger.WithComponent("dispatch")
	}
	if cfg.RateLimit > 0 {
		d.limiter = resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Name:  "provider",
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
	}
	return d, nil
}

// MaxConcurrency returns the number of admission slots per batch.
func (d *Dispatcher) MaxConcurrency() int {
	return d.config.MaxConcurrency
}

// batch is the state shared by the goroutines of one Dispatch call.
type batch struct {
	id         string
	req        transcription.Request
	total      int
	gate       *resilience.Bulkhead
	completed  atomic.Int64
	onProgress ProgressFunc
	log        *logger.Logger
}

// Dispatch transcribes every chunk and returns one outcome per chunk, in
// completion order. It returns only after every chunk has an outcome.
// onProgress may be nil.
func (d *Dispatcher) Dispatch(ctx context.Context, chunks []transcription.Chunk, req transcription.Request, onProgress ProgressFunc) []transcription.Outcome {
	b := &batch{
		id:    uuid.NewString(),
		req:   req,
		total: len(chunks),
		gate: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "provider",
			MaxConcurrent: d.config.MaxConcurrency,
			MaxWait:       resilience.WaitForever,
		}),
		onProgress: onProgress,
	}
	b.log = d.log.WithFields(logger.Fields(
		logger.FieldBatchID, b.id,
		logger.FieldProvider, req.Provider.String(),
	))

	ctx, span := observability.StartSpan(ctx, observability.SpanBatch, trace.WithAttributes(
		attribute.String(observability.AttrBatchID, b.id),
		attribute.String(observability.AttrProvider, req.Provider.String()),
		attribute.Int(observability.AttrChunkTotal, b.total),
	))

	start := time.Now()
	b.log.Info("dispatching batch", logger.Fields(
		logger.FieldChunkTotal, b.total,
		"max_concurrency", d.config.MaxConcurrency,
	))

	results := make(chan transcription.Outcome, len(chunks))
	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(c transcription.Chunk) {
			defer wg.Done()
			results <- d.runChunk(ctx, b, c)
		}(c)
	}
	wg.Wait()
	close(results)

	outcomes := make([]transcription.Outcome, 0, len(chunks))
	failed := 0
	for o := range results {
		if !o.Succeeded() {
			failed++
		}
		outcomes = append(outcomes, o)
	}

	status := observability.StatusOK
	var batchErr error
	if failed > 0 {
		status = observability.StatusError
		batchErr = errors.New(errors.ErrCodeAggregate, "one or more chunks failed").
			WithDetail("failed", failed)
	}
	span.SetAttributes(attribute.Int("transcription.chunk.failed", failed))
	observability.EndSpan(span, batchErr)
	d.metrics.BatchFinished(ctx, req.Provider.String(), status)

	b.log.Info("batch finished", logger.Fields(
		logger.FieldChunkTotal, b.total,
		"failed", failed,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return outcomes
}

// runChunk produces the outcome for one chunk. A panic anywhere in the unit
// becomes a worker fault outcome.
func (d *Dispatcher) runChunk(ctx context.Context, b *batch, c transcription.Chunk) (out transcription.Outcome) {
	out = transcription.Outcome{Index: c.Index, HasLeadingOverlap: c.HasLeadingOverlap}
	log := b.log.WithFields(logger.Fields(logger.FieldChunkIndex, c.Index))

	ctx, span := observability.StartSpan(ctx, observability.SpanChunk, trace.WithAttributes(
		attribute.String(observability.AttrBatchID, b.id),
		attribute.Int(observability.AttrChunkIndex, c.Index),
		attribute.Int(observability.AttrBytes, len(c.Data)),
	))

	defer func() {
		if r := recover(); r != nil {
			out.Text = ""
			out.Err = errors.WorkerFault(c.Index, r)
		}
		if out.Err != nil {
			log.WithError(out.Err).Warn("chunk failed")
		}
		observability.EndSpan(span, out.Err)
	}()

	admitted := false
	text, err := resilience.ExecuteWithResult(b.gate, ctx, func() (string, error) {
		admitted = true
		return d.callProvider(ctx, b.req, c)
	})
	if err != nil {
		if !admitted {
			// The context ended while waiting for a slot.
			err = errors.Transport(b.req.Provider.DisplayName(), err)
		}
		out.Err = err
		return out
	}

	out.Text = text
	n := int(b.completed.Add(1))
	log.Debug("chunk transcribed", logger.Fields(
		logger.FieldChars, len(text),
		"completed", n,
	))
	if b.onProgress != nil {
		b.onProgress(n, b.total)
	}
	return out
}

// callProvider runs while holding an admission slot.
func (d *Dispatcher) callProvider(ctx context.Context, req transcription.Request, c transcription.Chunk) (text string, err error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return "", errors.Transport(req.Provider.DisplayName(), err)
		}
	}

	d.metrics.ChunkStarted(ctx)
	start := time.Now()
	defer func() {
		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError
		}
		d.metrics.ChunkFinished(ctx, req.Provider.String(), status, time.Since(start))
	}()

	return d.adapter.Transcribe(ctx, req, c.Audio())
}
