package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/transcription"
)

func (a *app) runConfig(args []string) int {
	var (
		path     string
		provider string
		apiKey   string
		language string
		show     bool
	)
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.StringVarP(&path, "config", "c", "", "settings file (default: user config dir)")
	fs.StringVar(&provider, "provider", "", "default provider: openai or mistral")
	fs.StringVar(&apiKey, "api-key", "", "API key for the selected provider")
	fs.StringVarP(&language, "language", "l", "", "default 2-letter language hint")
	fs.BoolVar(&show, "show", false, "show current settings")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if path == "" {
		p, err := config.DefaultPath(nil)
		if err != nil {
			return a.fail("%v", err)
		}
		path = p
	}

	current, err := config.ReadSettings(path)
	if err != nil {
		return a.fail("%v", err)
	}

	update := config.Settings{Provider: provider, Language: language}
	if apiKey != "" {
		target := provider
		if target == "" {
			target = current.Provider
		}
		p, err := transcription.ParseProvider(target)
		if err != nil {
			return a.fail("%v", err)
		}
		if p == transcription.ProviderOpenAI {
			update.OpenAIAPIKey = apiKey
		} else {
			update.MistralAPIKey = apiKey
		}
	}

	if !update.IsEmpty() {
		if err := config.Save(path, update); err != nil {
			return a.fail("%v", err)
		}
		fmt.Fprintf(a.stdout, "Settings saved to %s\n", path)
		return 0
	}

	if show {
		a.showSettings(path, current)
		return 0
	}

	fmt.Fprintln(a.stderr, "Usage: scribe config --api-key <KEY> [--provider openai|mistral]")
	fmt.Fprintln(a.stderr, "       scribe config --language <CODE>")
	fmt.Fprintln(a.stderr, "       scribe config --show")
	return 1
}

func (a *app) showSettings(path string, s config.Settings) {
	provider := s.Provider
	if provider == "" {
		provider = transcription.ProviderOpenAI.String() + " (default)"
	}
	language := s.Language
	if language == "" {
		language = "(auto-detect)"
	}

	fmt.Fprintf(a.stdout, "Config file: %s\n", path)
	fmt.Fprintf(a.stdout, "Provider: %s\n", provider)
	fmt.Fprintf(a.stdout, "Language: %s\n", language)
	for _, p := range transcription.Providers() {
		key := s.OpenAIAPIKey
		if p == transcription.ProviderMistral {
			key = s.MistralAPIKey
		}
		shown := config.MaskKey(key)
		if shown == "" {
			shown = fmt.Sprintf("(not set, using $%s)", config.KeyEnvVar(p))
		}
		fmt.Fprintf(a.stdout, "%s API key: %s\n", p.DisplayName(), shown)
	}
}
