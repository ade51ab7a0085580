package adapter

import (
	"github.com/hpn/buildmate-ai/internal/config"
)

// NewFromConfig builds a Client from loaded configuration.
// override, when non-empty, takes precedence over the configured provider.
func NewFromConfig(cfg *config.AIConfig, override string, opts ...Option) (*Client, error) {
	return New(cfg.Descriptors(), cfg.ActiveProvider(override), opts...)
}
