// Package config loads the YAML configuration for the turbo-translate binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/FrenchMajesty/turbo-translate/clients/microsoft"
	"github.com/FrenchMajesty/turbo-translate/clients/openai"
	"github.com/FrenchMajesty/turbo-translate/utils/logger"
	"gopkg.in/yaml.v3"
)

const (
	ProviderMicrosoft = "microsoft"
	ProviderOpenAI    = "openai"

	// APIKeyEnv overrides the configured key of the selected provider
	APIKeyEnv = "TRANSLATOR_API_KEY"
)

// Config represents the complete configuration
type Config struct {
	Provider  string          `yaml:"provider"`
	Microsoft MicrosoftConfig `yaml:"microsoft"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Retry     RetryConfig     `yaml:"retry"`
	Quota     QuotaConfig     `yaml:"quota"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// MicrosoftConfig configures the TranslateArray XML endpoint
type MicrosoftConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Timeout  int    `yaml:"timeout"` // seconds
}

// OpenAIConfig configures the chat completion provider
type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Timeout int    `yaml:"timeout"` // seconds
}

// RetryConfig configures backoff on rate-limited responses
type RetryConfig struct {
	Count       int `yaml:"count"`
	BaseDelayMS int `yaml:"base_delay_ms"`
	MaxDelayMS  int `yaml:"max_delay_ms"` // 0 means uncapped
}

// QuotaConfig configures the client-side per-minute budget
type QuotaConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	UnitsPerMinute    int  `yaml:"units_per_minute"`
}

// LoggingConfig selects the log destination
type LoggingConfig struct {
	Output string `yaml:"output"` // stdout, file or noop
	File   string `yaml:"file"`
}

// MetricsConfig exposes Prometheus metrics over HTTP when Listen is set
type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. ":9090"
	Path   string `yaml:"path"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Provider: ProviderMicrosoft,
		Microsoft: MicrosoftConfig{
			Endpoint: microsoft.DefaultEndpoint,
			From:     microsoft.DefaultFrom,
			To:       microsoft.DefaultTo,
			Timeout:  30,
		},
		OpenAI: OpenAIConfig{
			Model:   openai.DefaultModel,
			From:    openai.DefaultFrom,
			To:      openai.DefaultTo,
			Timeout: 60,
		},
		Retry: RetryConfig{
			Count:       6,
			BaseDelayMS: 500,
		},
		Logging: LoggingConfig{
			Output: string(logger.LoggerTypeStdout),
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
	}
}

// Load reads path over the defaults. An empty path loads only the defaults.
// The APIKeyEnv environment variable, when set, wins over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.OpenAI.APIKey = key
		default:
			cfg.Microsoft.APIKey = key
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderMicrosoft:
		if c.Microsoft.Endpoint == "" {
			return errors.New("microsoft.endpoint is required")
		}
		if c.Microsoft.From == "" || c.Microsoft.To == "" {
			return errors.New("microsoft.from and microsoft.to are required")
		}
	case ProviderOpenAI:
		if c.OpenAI.Model == "" {
			return errors.New("openai.model is required")
		}
		if c.OpenAI.From == "" || c.OpenAI.To == "" {
			return errors.New("openai.from and openai.to are required")
		}
	default:
		return fmt.Errorf("unsupported provider %q (must be one of: %s, %s)", c.Provider, ProviderMicrosoft, ProviderOpenAI)
	}

	if c.Retry.Count < 0 {
		return errors.New("retry.count must not be negative")
	}
	if c.Retry.BaseDelayMS < 0 || c.Retry.MaxDelayMS < 0 {
		return errors.New("retry delays must not be negative")
	}

	if c.Quota.Enabled && (c.Quota.RequestsPerMinute < 0 || c.Quota.UnitsPerMinute < 0) {
		return errors.New("quota limits must not be negative")
	}

	if c.Metrics.Listen != "" && c.Metrics.Path == "" {
		return errors.New("metrics.path is required when metrics.listen is set")
	}

	switch logger.LoggerType(c.Logging.Output) {
	case logger.LoggerTypeStdout, logger.LoggerTypeNoop, "":
	case logger.LoggerTypeFile:
		if c.Logging.File == "" {
			return errors.New("logging.file is required when logging.output is file")
		}
	default:
		return fmt.Errorf("unsupported logging.output %q", c.Logging.Output)
	}

	return nil
}

// BaseDelay returns the configured base retry delay
func (r RetryConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMS) * time.Millisecond
}

// MaxDelay returns the configured retry delay cap
func (r RetryConfig) MaxDelay() time.Duration {
	return time.Duration(r.MaxDelayMS) * time.Millisecond
}

// HTTPTimeout returns the request timeout of the selected provider
func (c *Config) HTTPTimeout() time.Duration {
	seconds := c.Microsoft.Timeout
	if c.Provider == ProviderOpenAI {
		seconds = c.OpenAI.Timeout
	}
	return time.Duration(seconds) * time.Second
}
