package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the tfreview configuration.
type Config struct {
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model,omitempty"`
	TokenizerModel string        `yaml:"tokenizerModel,omitempty"`
	Language       string        `yaml:"language"`
	MaxTokens      int           `yaml:"maxTokens,omitempty"`
	BlockKeywords  []string      `yaml:"blockKeywords"`
	BlockMatch     string        `yaml:"blockMatch"`
	Roles          []string      `yaml:"roles"`
	Format         string        `yaml:"format"`
	RulesFile      string        `yaml:"rulesFile,omitempty"`
	Paths          PathsConfig   `yaml:"paths"`
	Retry          RetryConfig   `yaml:"retry"`
	Cache          CacheConfig   `yaml:"cache"`
	Privacy        PrivacyConfig `yaml:"privacy"`
}

// PathsConfig locates the files a run reads and writes.
type PathsConfig struct {
	Input       string `yaml:"input"`
	WorkingCopy string `yaml:"workingCopy"`
	Report      string `yaml:"report"`
	ForecastLog string `yaml:"forecastLog"`
}

// RetryConfig controls how rate-limited calls are retried.
type RetryConfig struct {
	MaxAttempts      int    `yaml:"maxAttempts"`
	BaseDelaySeconds int    `yaml:"baseDelaySeconds"`
	Backoff          string `yaml:"backoff"`
}

// CacheConfig controls response caching.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir,omitempty"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

// PrivacyConfig controls secret redaction.
type PrivacyConfig struct {
	RedactSecrets bool `yaml:"redactSecrets"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:      "openai",
		Language:      "Terraform",
		BlockKeywords: []string{"resource", "module", "data"},
		BlockMatch:    "prefix",
		Roles:         []string{"syntax", "best-practices", "optimization"},
		Format:        "text",
		Paths: PathsConfig{
			Input:       "inputs/main.tf",
			WorkingCopy: "recommit/main.tf",
			Report:      "outputs/review_report.txt",
			ForecastLog: "outputs/tokenforecasts.log",
		},
		Retry: RetryConfig{
			MaxAttempts:      5,
			BaseDelaySeconds: 2,
			Backoff:          "linear",
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: 86400,
		},
	}
}

// BaseDelay returns the retry base delay as a duration.
func (c Config) BaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelaySeconds) * time.Second
}

// CacheTTL returns the cache entry lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Tokenizer returns the model name used for token estimates.
func (c Config) Tokenizer() string {
	if c.TokenizerModel != "" {
		return c.TokenizerModel
	}
	return c.Model
}

// WithModel returns c with Model set to fallback(c.Provider) when no model
// was configured.
func (c Config) WithModel(fallback func(provider string) string) Config {
	if c.Model == "" && fallback != nil {
		c.Model = fallback(c.Provider)
	}
	return c
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "markdown", "md", "json":
	default:
		return fmt.Errorf("invalid format %q (want text, markdown or json)", c.Format)
	}
	switch c.Retry.Backoff {
	case "linear", "exponential":
	default:
		return fmt.Errorf("invalid retry.backoff %q (want linear or exponential)", c.Retry.Backoff)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.maxAttempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelaySeconds < 0 {
		return fmt.Errorf("retry.baseDelaySeconds must not be negative")
	}
	if c.Paths.Input == "" || c.Paths.WorkingCopy == "" {
		return errors.New("paths.input and paths.workingCopy are required")
	}
	if len(c.BlockKeywords) == 0 {
		return errors.New("blockKeywords must not be empty")
	}
	switch c.BlockMatch {
	case "", "prefix", "word":
	default:
		return fmt.Errorf("invalid blockMatch %q (want prefix or word)", c.BlockMatch)
	}
	if len(c.Roles) == 0 {
		return errors.New("roles must not be empty")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("maxTokens must not be negative, got %d", c.MaxTokens)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for tfreview.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tfreview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tfreview"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tfreview"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "tfreview"), nil
	default:
		return filepath.Join(home, ".config", "tfreview"), nil
	}
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// resolve returns path, or the default config path when path is empty.
func resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return ConfigPath()
}

// mergeFile decodes the YAML file at path onto cfg. Keys absent from the
// file keep their current value. A missing file is not an error.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Save writes cfg as YAML to path, or to the default location when path is
// empty. It returns the path written.
func Save(cfg Config, path string) (string, error) {
	path, err := resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// LoadFile returns defaults merged with the config file only.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	path, err := resolve(path)
	if err != nil {
		return Config{}, err
	}
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(path string, overrides map[string]string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	for _, key := range overrideKeys {
		if v, ok := overrides[key]; ok && v != "" {
			if err := SetField(&cfg, key, v); err != nil {
				return Config{}, err
			}
		}
	}
	return cfg, nil
}

// overrideKeys fixes the order overrides are applied in.
var overrideKeys = []string{
	"provider", "model", "format", "language", "rulesFile", "maxTokens",
	"blockKeywords", "blockMatch", "roles",
	"paths.input", "paths.workingCopy", "paths.report", "paths.forecastLog",
	"privacy.redactSecrets",
}

var envKeys = map[string]string{
	"TFREVIEW_PROVIDER":       "provider",
	"TFREVIEW_MODEL":          "model",
	"TFREVIEW_FORMAT":         "format",
	"TFREVIEW_LANGUAGE":       "language",
	"TFREVIEW_MAX_TOKENS":     "maxTokens",
	"TFREVIEW_BLOCK_MATCH":    "blockMatch",
	"TFREVIEW_ROLES":          "roles",
	"TFREVIEW_INPUT":          "paths.input",
	"TFREVIEW_WORKING_COPY":   "paths.workingCopy",
	"TFREVIEW_REPORT":         "paths.report",
	"TFREVIEW_FORECAST_LOG":   "paths.forecastLog",
	"TFREVIEW_MAX_ATTEMPTS":   "retry.maxAttempts",
	"TFREVIEW_BACKOFF":        "retry.backoff",
	"TFREVIEW_CACHE":          "cache.enabled",
	"TFREVIEW_REDACT_SECRETS": "privacy.redactSecrets",
}

func mergeEnv(cfg *Config) error {
	for env, key := range envKeys {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

// Keys lists every key accepted by SetField.
func Keys() []string {
	return []string{
		"provider", "model", "tokenizerModel", "language", "maxTokens",
		"blockKeywords", "blockMatch", "roles", "format", "rulesFile",
		"paths.input", "paths.workingCopy", "paths.report", "paths.forecastLog",
		"retry.maxAttempts", "retry.baseDelaySeconds", "retry.backoff",
		"cache.enabled", "cache.dir", "cache.ttlSeconds",
		"privacy.redactSecrets",
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "tokenizerModel":
		cfg.TokenizerModel = value
	case "language":
		cfg.Language = value
	case "maxTokens":
		return setInt(&cfg.MaxTokens, key, value)
	case "blockKeywords":
		cfg.BlockKeywords = splitList(value)
	case "blockMatch":
		cfg.BlockMatch = strings.ToLower(strings.TrimSpace(value))
	case "roles":
		cfg.Roles = splitList(value)
	case "format":
		cfg.Format = value
	case "rulesFile":
		cfg.RulesFile = value
	case "paths.input":
		cfg.Paths.Input = value
	case "paths.workingCopy":
		cfg.Paths.WorkingCopy = value
	case "paths.report":
		cfg.Paths.Report = value
	case "paths.forecastLog":
		cfg.Paths.ForecastLog = value
	case "retry.maxAttempts":
		return setInt(&cfg.Retry.MaxAttempts, key, value)
	case "retry.baseDelaySeconds":
		return setInt(&cfg.Retry.BaseDelaySeconds, key, value)
	case "retry.backoff":
		cfg.Retry.Backoff = value
	case "cache.enabled":
		return setBool(&cfg.Cache.Enabled, key, value)
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		return setInt(&cfg.Cache.TTLSeconds, key, value)
	case "privacy.redactSecrets":
		return setBool(&cfg.Privacy.RedactSecrets, key, value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
