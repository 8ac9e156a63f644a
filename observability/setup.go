package observability

import (
	"context"
	"errors"
)

// Config enables tracing and metrics export for the CLI.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Insecure       bool
	SampleRate     float64
}

// ShutdownFunc flushes and stops the installed providers.
type ShutdownFunc func(ctx context.Context) error

// Setup installs the tracer and meter providers when cfg.Enabled is set.
// When disabled it returns a no-op shutdown and leaves the globals untouched.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tcfg := DefaultTracerConfig(cfg.ServiceName)
	mcfg := DefaultMeterConfig(cfg.ServiceName)
	if cfg.ServiceVersion != "" {
		tcfg.ServiceVersion, mcfg.ServiceVersion = cfg.ServiceVersion, cfg.ServiceVersion
	}
	if cfg.Environment != "" {
		tcfg.Environment, mcfg.Environment = cfg.Environment, cfg.Environment
	}
	if cfg.Endpoint != "" {
		tcfg.Endpoint, mcfg.Endpoint = cfg.Endpoint, cfg.Endpoint
	}
	tcfg.Insecure, mcfg.Insecure = cfg.Insecure, cfg.Insecure
	tcfg.SampleRate = cfg.SampleRate

	tp, err := InitTracer(ctx, tcfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
