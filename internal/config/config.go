// Package config provides configuration management using the Singleton pattern.
// It loads configuration from environment variables and config.yaml using Viper.
package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hpn/buildmate-ai/internal/domain"
)

// Configuration holds all application configuration values.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// AI provider configuration
	AI AIConfig `json:"ai" mapstructure:"ai"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeoutSeconds is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeoutSeconds is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// AIConfig selects the active provider and holds per-provider settings.
type AIConfig struct {
	// Provider is the active provider name (AI_PROVIDER).
	Provider string `json:"provider" mapstructure:"provider"`

	// RequestTimeoutSeconds bounds each upstream call made on behalf of an HTTP request.
	// Zero disables the bound.
	RequestTimeoutSeconds int `json:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`

	// Providers overrides the built-in catalog, keyed by provider name.
	Providers map[string]ProviderConfig `json:"providers" mapstructure:"providers"`
}

// ProviderConfig holds the configurable fields of one provider.
type ProviderConfig struct {
	APIKey      string            `json:"-" mapstructure:"api_key"`
	BaseURL     string            `json:"base_url" mapstructure:"base_url"`
	Models      domain.Models     `json:"models" mapstructure:"models"`
	Headers     map[string]string `json:"headers" mapstructure:"headers"`
	MaxTokens   int               `json:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64           `json:"temperature" mapstructure:"temperature"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`

	// Console enables the colored per-request line on stdout.
	Console bool `json:"console" mapstructure:"console"`
}

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfig returns the singleton Configuration instance.
// It initializes the configuration on first call using the default config path.
func GetConfig() (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig("")
	})
	return configInstance, configErr
}

// GetConfigWithPath returns the singleton Configuration instance with a custom config path.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(configPath)
	})
	return configInstance, configErr
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// Validate validates the configuration and returns an error if required fields are missing.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if c.AI.Provider != "" && !domain.IsKnownProvider(domain.ProviderName(c.AI.Provider)) {
		validationErrors = append(validationErrors, (&InvalidValueError{
			Key:           "ai.provider",
			Value:         c.AI.Provider,
			AllowedValues: providerNames(),
		}).Error())
	}

	if c.AI.RequestTimeoutSeconds < 0 {
		validationErrors = append(validationErrors, "ai.request_timeout_seconds cannot be negative")
	}

	for _, name := range sortedKeys(c.AI.Providers) {
		pc := c.AI.Providers[name]
		if !domain.IsKnownProvider(domain.ProviderName(name)) {
			validationErrors = append(validationErrors, fmt.Sprintf("ai.providers.%s is not a supported provider", name))
			continue
		}
		if pc.MaxTokens <= 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("ai.providers.%s.max_tokens must be positive", name))
		}
		if pc.Temperature < 0 || pc.Temperature > 2 {
			validationErrors = append(validationErrors, fmt.Sprintf("ai.providers.%s.temperature must be between 0 and 2", name))
		}
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format '%s' is invalid, must be one of: json, text",
			c.Logging.Format,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// ActiveProvider resolves the provider to use: override first, then the
// configured selector, then the default provider.
func (a *AIConfig) ActiveProvider(override string) domain.ProviderName {
	if name := strings.ToLower(strings.TrimSpace(override)); name != "" {
		return domain.ProviderName(name)
	}
	if name := strings.ToLower(strings.TrimSpace(a.Provider)); name != "" {
		return domain.ProviderName(name)
	}
	return domain.DefaultProvider
}

// Descriptors builds the provider registry: the built-in catalog with
// configured values laid over it.
func (a *AIConfig) Descriptors() domain.Registry {
	reg := domain.Catalog()

	for name, d := range reg {
		pc, ok := a.Providers[string(name)]
		if !ok {
			continue
		}

		d.APIKey = strings.TrimSpace(pc.APIKey)
		if pc.BaseURL != "" {
			d.BaseURL = strings.TrimSuffix(pc.BaseURL, "/")
		}
		if pc.Models.Chat != "" {
			d.Models.Chat = pc.Models.Chat
		}
		if pc.Models.Fast != "" {
			d.Models.Fast = pc.Models.Fast
		}
		if pc.Models.Advanced != "" {
			d.Models.Advanced = pc.Models.Advanced
		}
		if len(pc.Headers) > 0 {
			if d.Headers == nil {
				d.Headers = make(map[string]string, len(pc.Headers))
			}
			for k, v := range pc.Headers {
				d.Headers[k] = v
			}
		}
		if pc.MaxTokens > 0 {
			d.MaxTokens = pc.MaxTokens
		}
		d.Temperature = pc.Temperature

		reg[name] = d
	}

	return reg
}

func providerNames() []string {
	names := domain.ProviderNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func sortedKeys(m map[string]ProviderConfig) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
