package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/httpclient"
	"github.com/kbukum/scribe/logger"
)

// Adapter sends one piece of audio to a provider and returns its text.
// Implementations make exactly one attempt and never retry.
type Adapter interface {
	Transcribe(ctx context.Context, req Request, audio Audio) (string, error)
}

// AdapterFunc adapts an ordinary function to the Adapter interface.
type AdapterFunc func(ctx context.Context, req Request, audio Audio) (string, error)

// Transcribe calls f(ctx, req, audio).
func (f AdapterFunc) Transcribe(ctx context.Context, req Request, audio Audio) (string, error) {
	return f(ctx, req, audio)
}

// Option configures an HTTPAdapter.
type Option func(*adapterConfig)

type adapterConfig struct {
	endpoint string
	timeout  time.Duration
	log      *logger.Logger
}

// WithEndpoint overrides the provider URL, e.g. for a self-hosted gateway.
func WithEndpoint(url string) Option {
	return func(c *adapterConfig) {
		c.endpoint = url
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *adapterConfig) {
		c.timeout = d
	}
}

// WithLogger sets the adapter logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *adapterConfig) {
		c.log = l
	}
}

// HTTPAdapter implements Adapter over the provider's multipart upload API.
type HTTPAdapter struct {
	provider Provider
	endpoint string
	client   *httpclient.Client
	log      *logger.Logger
}

// NewAdapter creates the adapter for provider p.
func NewAdapter(p Provider, opts ...Option) (*HTTPAdapter, error) {
	if !p.Valid() {
		return nil, errors.InvalidInput("provider", fmt.Sprintf("unknown provider %d", int(p)))
	}

	cfg := adapterConfig{
		endpoint: p.Endpoint(),
		timeout:  httpclient.DefaultTimeout,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.WithComponent("transcription")
	}

	client, err := httpclient.New(httpclient.Config{Timeout: cfg.timeout})
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &HTTPAdapter{
		provider: p,
		endpoint: cfg.endpoint,
		client:   client,
		log:      cfg.log.WithFields(logger.Fields(logger.FieldProvider, p.String())),
	}, nil
}

// Name returns the provider name.
func (a *HTTPAdapter) Name() string { return a.provider.String() }

// Provider returns the provider this adapter talks to.
func (a *HTTPAdapter) Provider() Provider { return a.provider }

// Transcribe uploads audio once and decodes the provider's {"text": ...} reply.
func (a *HTTPAdapter) Transcribe(ctx context.Context, req Request, audio Audio) (string, error) {
	name := a.provider.DisplayName()

	fields := map[string]string{"model": a.provider.Model()}
	if req.Language != "" {
		fields["language"] = req.Language
	}

	resp, err := a.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   a.endpoint,
		Auth:   httpclient.BearerAuth(req.APIKey),
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "file",
				FileName:    audio.FileName,
				ContentType: AudioContentType,
				Data:        audio.Data,
			}},
		},
	})
	if err != nil {
		return "", errors.Transport(name, err)
	}

	if !resp.IsSuccess() {
		a.log.Debug("provider rejected upload", logger.Fields(
			logger.FieldStatus, resp.StatusCode,
			logger.FieldFile, audio.FileName,
		))
		return "", errors.Provider(name, resp.StatusCode, string(resp.Body))
	}

	var reply transcriptionReply
	if err := json.Unmarshal(resp.Body, &reply); err != nil {
		return "", errors.Decode(name, err)
	}
	if reply.Text == nil {
		return "", errors.Decode(name, fmt.Errorf("response has no text field"))
	}

	a.log.Debug("upload transcribed", logger.Fields(
		logger.FieldFile, audio.FileName,
		logger.FieldBytes, len(audio.Data),
		logger.FieldChars, len(*reply.Text),
	))
	return *reply.Text, nil
}

// transcriptionReply is the part of the provider reply we read. Other fields
// (segments, usage, language) are ignored.
type transcriptionReply struct {
	Text *string `json:"text"`
}
