package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/scribe/audio"
	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/session"
	"github.com/kbukum/scribe/version"
)

type transcribeFlags struct {
	configFile  string
	envFile     string
	provider    string
	language    string
	overlap     bool
	noClipboard bool
	progress    bool
	verbose     bool
}

func (a *app) runTranscribe(ctx context.Context, args []string) int {
	var f transcribeFlags
	fs := pflag.NewFlagSet("transcribe", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintln(a.stderr, "Usage: scribe transcribe [flags] FILE...")
		fmt.Fprintln(a.stderr, "\nOne file is sent in a single request. Several files are treated as")
		fmt.Fprintln(a.stderr, "consecutive chunks of one recording and merged in argument order.")
		fmt.Fprintln(a.stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	fs.StringVarP(&f.configFile, "config", "c", "", "settings file (default: user config dir)")
	fs.StringVar(&f.envFile, "env-file", "", ".env file to load")
	fs.StringVar(&f.provider, "provider", "", "provider override: openai or mistral")
	fs.StringVarP(&f.language, "language", "l", "", "2-letter language hint override")
	fs.BoolVar(&f.overlap, "overlap", false, "chunks after the first repeat the end of the previous one")
	fs.BoolVar(&f.noClipboard, "no-clipboard", false, "print the transcript instead of copying it")
	fs.BoolVarP(&f.progress, "progress", "p", false, "report chunk progress")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	opts := []config.LoaderOption{}
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return a.fail("%v", err)
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
	if fs.Changed("provider") {
		cfg.Transcription.Provider = f.provider
		cfg.Transcription.ApplyDefaults()
	}
	if fs.Changed("language") {
		cfg.Transcription.Language = f.language
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}
	logger.Init(cfg.Logging)
	log := logger.Get("cli")

	shutdown, err := observability.Setup(ctx, cfg.ObservabilitySetup())
	if err != nil {
		return a.fail("observability: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warn("observability shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	var metrics *observability.DispatchMetrics
	if cfg.Observability.Enabled {
		if metrics, err = observability.NewDispatchMetrics(observability.Meter(cfg.Name)); err != nil {
			log.Warn("dispatch metrics disabled", logger.ErrorFields("metrics", err))
		}
	}

	rec, err := audio.NewFileSource(nil).Load(fs.Args(), f.overlap)
	if err != nil {
		return a.fail("%v", err)
	}

	tr, err := session.FromConfig(cfg.Transcription,
		session.WithLogger(logger.GetGlobalLogger()),
		session.WithMetrics(metrics),
	)
	if err != nil {
		return a.fail("%s", describe(err))
	}

	fmt.Fprintln(a.stderr, "Transcribing...")
	var onProgress func(completed, total int)
	if f.progress && rec.IsChunked() {
		var mu sync.Mutex
		onProgress = func(completed, total int) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(a.stderr, "(%d/%d)\n", completed, total)
		}
	}

	text, err := tr.Transcribe(ctx, rec, onProgress)
	if err != nil {
		return a.fail("transcription failed: %v", err)
	}

	if f.noClipboard {
		fmt.Fprintln(a.stdout, text)
		return 0
	}
	if err := a.clipboard.WriteText(ctx, text); err != nil {
		return a.fail("%v", err)
	}
	fmt.Fprintln(a.stderr, "Copied to clipboard")
	return 0
}

// describe turns setup errors into actionable messages.
func describe(err error) string {
	appErr, ok := errors.AsAppError(err)
	if ok && appErr.Code == errors.ErrCodeMissingField && appErr.Details["env"] != nil {
		return fmt.Sprintf("no API key for %v: run 'scribe config --provider %v --api-key <KEY>' or set %v",
			appErr.Details["provider"], appErr.Details["provider"], appErr.Details["env"])
	}
	return err.Error()
}
