package dispatch

import "github.com/kbukum/scribe/validation"

// DefaultMaxConcurrency is the number of provider calls allowed in flight.
const DefaultMaxConcurrency = 3

// Config bounds how a batch reaches the provider.
type Config struct {
	// MaxConcurrency is the admission slot count. Defaults to 3.
	MaxConcurrency int `json:"max_concurrency" validate:"gte=1"`
	// RateLimit caps provider calls per second across batches. 0 disables it.
	RateLimit float64 `json:"rate_limit" validate:"gte=0"`
	// RateBurst is the limiter bucket size. Defaults to the rounded rate.
	RateBurst int `json:"rate_burst" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
