package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/scribe/audio"
	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/dispatch"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/merge"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/transcription"
)

// Transcriber runs transcriptions for one provider request.
type Transcriber struct {
	req        transcription.Request
	adapter    transcription.Adapter
	dispatcher *dispatch.Dispatcher
	log        *logger.Logger
}

// Option configures a Transcriber.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.DispatchMetrics
}

// WithLogger sets the logger used by the session and its dispatcher.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records dispatch metrics.
func WithMetrics(m *observability.DispatchMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates a Transcriber. The request is validated here so that no chunk
// is sent with a missing key or malformed language hint.
func New(req transcription.Request, adapter transcription.Adapter, cfg dispatch.Config, opts ...Option) (*Transcriber, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}

	d, err := dispatch.New(adapter, cfg,
		dispatch.WithLogger(o.log.WithComponent("dispatch")),
		dispatch.WithMetrics(o.metrics),
	)
	if err != nil {
		return nil, err
	}

	return &Transcriber{
		req:        req,
		adapter:    adapter,
		dispatcher: d,
		log: o.log.WithComponent("session").WithFields(logger.Fields(
			logger.FieldProvider, req.Provider.String(),
		)),
	}, nil
}

// FromConfig builds the HTTP adapter and Transcriber for the configured
// provider.
func FromConfig(tc config.TranscriptionConfig, opts ...Option) (*Transcriber, error) {
	req, err := tc.Request()
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	adapterOpts := tc.AdapterOptions()
	if o.log != nil {
		adapterOpts = append(adapterOpts, transcription.WithLogger(o.log.WithComponent("transcription")))
	}

	adapter, err := transcription.NewAdapter(req.Provider, adapterOpts...)
	if err != nil {
		return nil, err
	}
	return New(req, adapter, tc.DispatchConfig(), opts...)
}

// Request returns the request this session sends.
func (t *Transcriber) Request() transcription.Request {
	return t.req
}

// Transcribe picks the single-shot or chunked path for rec.
func (t *Transcriber) Transcribe(ctx context.Context, rec audio.Recording, onProgress dispatch.ProgressFunc) (string, error) {
	if rec.IsChunked() {
		return t.TranscribeMany(ctx, rec.Chunks(), onProgress)
	}
	return t.TranscribeOne(ctx, rec.Data())
}

// TranscribeOne sends data in a single request and returns the provider's
// text unchanged.
func (t *Transcriber) TranscribeOne(ctx context.Context, data []byte) (text string, err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSingle, trace.WithAttributes(
		attribute.String(observability.AttrProvider, t.req.Provider.String()),
		attribute.Int(observability.AttrBytes, len(data)),
	))
	defer func() { observability.EndSpan(span, err) }()

	start := time.Now()
	t.log.Debug("transcribing single payload", logger.Fields(logger.FieldBytes, len(data)))

	text, err = t.adapter.Transcribe(ctx, t.req, transcription.SingleAudio(data))
	if err != nil {
		return "", err
	}

	t.log.Debug("transcription complete",
		logger.DurationFields("transcribe_one", time.Since(start)),
		logger.Fields(logger.FieldChars, len(text)),
	)
	return text, nil
}

// TranscribeMany dispatches chunks and merges the results in index order.
// onProgress may be nil.
func (t *Transcriber) TranscribeMany(ctx context.Context, chunks []transcription.Chunk, onProgress dispatch.ProgressFunc) (string, error) {
	if err := dispatch.ValidateChunks(chunks); err != nil {
		return "", err
	}

	start := time.Now()
	outcomes := t.dispatcher.Dispatch(ctx, chunks, t.req, onProgress)

	_, span := observability.StartSpan(ctx, observability.SpanMerge, trace.WithAttributes(
		attribute.Int(observability.AttrChunkTotal, len(outcomes)),
	))
	text, err := merge.Assemble(outcomes)
	observability.EndSpan(span, err)
	if err != nil {
		t.log.Error("batch failed",
			logger.ErrorFields("transcribe_many", err),
			logger.Fields(logger.FieldChunkTotal, len(chunks)),
		)
		return "", err
	}

	t.log.Debug("batch merged",
		logger.DurationFields("transcribe_many", time.Since(start)),
		logger.Fields(logger.FieldChunkTotal, len(chunks), logger.FieldChars, len(text)),
	)
	return text, nil
}
