// Package config provides configuration management using the Singleton pattern.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/hpn/buildmate-ai/internal/domain"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "BUILDMATE"

	// EnvProvider selects the active AI provider.
	EnvProvider = "AI_PROVIDER"
)

// credentialEnv lists the conventional environment variables holding each provider's key.
// The first name is preferred.
var credentialEnv = map[domain.ProviderName][]string{
	domain.ProviderOpenAI:      {"OPENAI_API_KEY"},
	domain.ProviderGroq:        {"GROQ_API_KEY"},
	domain.ProviderAnthropic:   {"ANTHROPIC_API_KEY"},
	domain.ProviderGoogle:      {"GOOGLE_AI_API_KEY", "GEMINI_API_KEY"},
	domain.ProviderHuggingFace: {"HUGGINGFACE_API_KEY", "HF_TOKEN"},
}

// loadConfig loads the configuration from environment variables and files.
// Priority order (highest to lowest):
// 1. Provider env vars (AI_PROVIDER, OPENAI_API_KEY, ...)
// 2. Environment variables prefixed with BUILDMATE_
// 3. config.yaml
// 4. Defaults, including the built-in provider catalog
func loadConfig(configPath string) (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/buildmate")
		v.AddConfigPath("$HOME/.buildmate")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := bindProviderEnv(v); err != nil {
		return nil, &ConfigError{Op: "bind_env", Err: err}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
		fmt.Fprintf(os.Stderr, "[CONFIG] No config file found, using environment variables and defaults\n")
	} else {
		fmt.Fprintf(os.Stderr, "[CONFIG] Using %s\n", v.ConfigFileUsed())
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 90)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// AI defaults
	v.SetDefault("ai.provider", string(domain.DefaultProvider))
	v.SetDefault("ai.request_timeout_seconds", 60)
	for name, d := range domain.Catalog() {
		prefix := "ai.providers." + string(name) + "."
		v.SetDefault(prefix+"api_key", "")
		v.SetDefault(prefix+"base_url", d.BaseURL)
		v.SetDefault(prefix+"models.chat", d.Models.Chat)
		v.SetDefault(prefix+"models.fast", d.Models.Fast)
		v.SetDefault(prefix+"models.advanced", d.Models.Advanced)
		v.SetDefault(prefix+"max_tokens", d.MaxTokens)
		v.SetDefault(prefix+"temperature", d.Temperature)
	}

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.console", false)
}

// bindProviderEnv binds the conventional provider variables alongside the prefixed ones.
func bindProviderEnv(v *viper.Viper) error {
	if err := v.BindEnv("ai.provider", EnvProvider, envPrefix+"_AI_PROVIDER"); err != nil {
		return err
	}

	for name, envs := range credentialEnv {
		key := "ai.providers." + string(name) + ".api_key"
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key}, append(envs, prefixed)...)...); err != nil {
			return err
		}
	}

	return nil
}
