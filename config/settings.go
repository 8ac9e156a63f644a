package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kbukum/scribe/transcription"
	"github.com/kbukum/scribe/util"
	"github.com/kbukum/scribe/validation"
)

// Settings is the user-editable part of the configuration. Empty fields are
// left unchanged by Save.
type Settings struct {
	Provider      string
	Language      string
	OpenAIAPIKey  string
	MistralAPIKey string
}

// Validate checks each field that is set.
func (s Settings) Validate() error {
	v := validation.New().
		OneOf("provider", strings.ToLower(s.Provider), transcription.ProviderNames()).
		Language("language", s.Language).
		Prefix("openai_api_key", s.OpenAIAPIKey, "sk-")
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// IsEmpty reports whether no field is set.
func (s Settings) IsEmpty() bool {
	return s == Settings{}
}

// Save merges s into the YAML settings file at path, creating it (and its
// directory) if needed. Other keys in the file are preserved. The file is
// written with owner-only permissions since it holds API keys.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	if s.Provider != "" {
		v.Set("transcription.provider", strings.ToLower(s.Provider))
	}
	if s.Language != "" {
		v.Set("transcription.language", s.Language)
	}
	if s.OpenAIAPIKey != "" {
		v.Set("transcription.openai_api_key", s.OpenAIAPIKey)
	}
	if s.MistralAPIKey != "" {
		v.Set("transcription.mistral_api_key", s.MistralAPIKey)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	v.SetConfigPermissions(0o600)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// ReadSettings returns the settings stored at path without applying
// defaults or environment overrides. A missing file yields empty Settings.
func ReadSettings(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	return Settings{
		Provider:      v.GetString("transcription.provider"),
		Language:      v.GetString("transcription.language"),
		OpenAIAPIKey:  v.GetString("transcription.openai_api_key"),
		MistralAPIKey: v.GetString("transcription.mistral_api_key"),
	}, nil
}

// MaskKey hides most of an API key for display.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	return util.MaskSecret(key, 6, 4)
}
