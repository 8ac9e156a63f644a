package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/util"
)

const appDir = "scribe"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	ConfigDir() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) ConfigDir() (string, error) {
	return os.UserConfigDir()
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches for them.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.firstExisting(r.searchPaths("config.yml", "config.yaml"))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.firstExisting(r.searchPaths(".env"))
	}

	return resolved
}

// searchPaths lists candidate paths in lookup order: the user config
// directory first, then the working directory.
func (r *Resolver) searchPaths(names ...string) []string {
	var paths []string
	if dir, err := r.FileSystem.ConfigDir(); err == nil && dir != "" {
		for _, n := range names {
			paths = append(paths, filepath.Join(dir, appDir, n))
		}
	}
	for _, n := range names {
		paths = append(paths, "./"+n)
	}
	for _, n := range names {
		paths = append(paths, "./config/"+n)
	}
	return paths
}

func (r *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// DefaultPath returns where `scribe config` writes settings.
func DefaultPath(fs FileSystem) (string, error) {
	if fs == nil {
		fs = &RealFileSystem{}
	}
	dir, err := fs.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, "config.yml"), nil
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string][]string{
	"transcription.provider":        {"SCRIBE_PROVIDER"},
	"transcription.language":        {"SCRIBE_LANGUAGE"},
	"transcription.max_concurrency": {"SCRIBE_MAX_CONCURRENCY"},
	"transcription.timeout":         {"SCRIBE_TIMEOUT"},
	"transcription.endpoint":        {"SCRIBE_ENDPOINT"},
	"logging.level":                 {"SCRIBE_LOG_LEVEL"},
	"logging.format":                {"SCRIBE_LOG_FORMAT"},
	"observability.enabled":         {"SCRIBE_OTEL_ENABLED"},
	"observability.endpoint":        {"SCRIBE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"},
}

// keyFallbacks are only consulted when the settings file has no key, so a
// saved key wins over the environment.
var keyFallbacks = map[string]string{
	"transcription.openai_api_key":  "OPENAI_API_KEY",
	"transcription.mistral_api_key": "MISTRAL_API_KEY",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "scribe")
	v.SetDefault("environment", "production")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.timestamp", true)
	v.SetDefault("transcription.provider", "openai")
	v.SetDefault("transcription.language", "")
	v.SetDefault("transcription.max_concurrency", 3)
	v.SetDefault("transcription.timeout", "300s")
	v.SetDefault("transcription.endpoint", "")
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.endpoint", "localhost:4318")
	v.SetDefault("observability.insecure", true)
	v.SetDefault("observability.sample_rate", 1.0)
}

// Load resolves the settings and .env files, applies environment overrides,
// and returns a validated Config. A missing settings file is not an error.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(lc)

	cfg, err := loadFromResolvedFiles(files, lc.FileSystem)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(files ResolvedFiles, fs FileSystem) (*Config, error) {
	log := logger.WithComponent("config")
	v := viper.New()
	setDefaults(v)

	// 1. Settings file
	loaded := ""
	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", files.ConfigFile, err)
		}
		loaded = files.ConfigFile
	}

	// 2. .env file; existing environment variables are not overwritten
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load .env file", logger.Fields("path", files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	// 3. Environment overrides
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	for key, env := range keyFallbacks {
		if v.GetString(key) == "" {
			if val := util.SanitizeEnvValue(os.Getenv(env)); val != "" {
				v.Set(key, val)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigFile = loaded

	log.Debug("configuration loaded", logger.Fields(
		"config_file", loaded,
		"env_file", files.EnvFile,
		logger.FieldProvider, cfg.Transcription.Provider,
	))
	return &cfg, nil
}
