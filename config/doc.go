// Package config loads scribe's settings and persists the user-editable part
// of them.
//
// It uses Viper to load a YAML file and environment variables, and godotenv
// to pick up .env files. The settings file is searched for in the user
// config directory ($XDG_CONFIG_HOME/scribe/config.yml) and then in the
// working directory.
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile(path))
//	req, err := cfg.Transcription.Request()
//
// SCRIBE_PROVIDER and SCRIBE_LANGUAGE override the file. API keys come from
// the file first and fall back to OPENAI_API_KEY or MISTRAL_API_KEY.
package config
