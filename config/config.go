package config

import (
	"strings"
	"time"

	"github.com/kbukum/scribe/dispatch"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/httpclient"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/validation"
)

// Config is the complete scribe configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Transcription TranscriptionConfig `yaml:"transcription" mapstructure:"transcription"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`

	// ConfigFile is the settings file the values were read from, if any.
	ConfigFile string `yaml:"-" mapstructure:"-"`
}

// TranscriptionConfig selects the provider and bounds how chunks reach it.
type TranscriptionConfig struct {
	Provider       string        `json:"provider" yaml:"provider" mapstructure:"provider" validate:"oneof=openai mistral"`
	Language       string        `json:"language" yaml:"language" mapstructure:"language" validate:"omitempty,langcode"`
	OpenAIAPIKey   string        `json:"openai_api_key" yaml:"openai_api_key" mapstructure:"openai_api_key"`
	MistralAPIKey  string        `json:"mistral_api_key" yaml:"mistral_api_key" mapstructure:"mistral_api_key"`
	MaxConcurrency int           `json:"max_concurrency" yaml:"max_concurrency" mapstructure:"max_concurrency" validate:"gte=1"`
	Timeout        time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	RateLimit      float64       `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst      int           `json:"rate_burst" yaml:"rate_burst" mapstructure:"rate_burst" validate:"gte=0"`

	// Endpoint overrides the provider URL, e.g. for a self-hosted gateway.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
}

// ObservabilityConfig enables OTLP export of traces and metrics.
type ObservabilityConfig struct {
	Enabled    bool    `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `json:"insecure" yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Transcription.ApplyDefaults()
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return errors.Validation(err.Error())
	}
	if err := validation.Validate(c.Transcription); err != nil {
		return err
	}
	return validation.Validate(c.Observability)
}

// ApplyDefaults fills in zero-value fields and normalizes the provider name.
func (c *TranscriptionConfig) ApplyDefaults() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = transcription.ProviderOpenAI.String()
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = dispatch.DefaultMaxConcurrency
	}
	if c.Timeout == 0 {
		c.Timeout = httpclient.DefaultTimeout
	}
}

// APIKeyFor returns the configured key for p.
func (c *TranscriptionConfig) APIKeyFor(p transcription.Provider) string {
	if p == transcription.ProviderMistral {
		return c.MistralAPIKey
	}
	return c.OpenAIAPIKey
}

// KeyEnvVar returns the environment variable consulted for p's key.
func KeyEnvVar(p transcription.Provider) string {
	if p == transcription.ProviderMistral {
		return "MISTRAL_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// Request builds the transcription request for the selected provider.
func (c *TranscriptionConfig) Request() (transcription.Request, error) {
	p, err := transcription.ParseProvider(c.Provider)
	if err != nil {
		return transcription.Request{}, err
	}

	key := c.APIKeyFor(p)
	if key == "" {
		return transcription.Request{}, errors.MissingField("api_key").
			WithDetail("provider", p.String()).
			WithDetail("env", KeyEnvVar(p))
	}

	req := transcription.Request{Provider: p, APIKey: key, Language: c.Language}
	if err := req.Validate(); err != nil {
		return transcription.Request{}, err
	}
	return req, nil
}

// DispatchConfig returns the dispatcher settings.
func (c *TranscriptionConfig) DispatchConfig() dispatch.Config {
	return dispatch.Config{
		MaxConcurrency: c.MaxConcurrency,
		RateLimit:      c.RateLimit,
		RateBurst:      c.RateBurst,
	}
}

// AdapterOptions returns the adapter options implied by the configuration.
func (c *TranscriptionConfig) AdapterOptions() []transcription.Option {
	opts := []transcription.Option{transcription.WithTimeout(c.Timeout)}
	if c.Endpoint != "" {
		opts = append(opts, transcription.WithEndpoint(c.Endpoint))
	}
	return opts
}

// ObservabilitySetup returns the tracer and meter settings for the service.
func (c *Config) ObservabilitySetup() observability.Config {
	return observability.Config{
		Enabled:        c.Observability.Enabled,
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Observability.Endpoint,
		Insecure:       c.Observability.Insecure,
		SampleRate:     c.Observability.SampleRate,
	}
}
