// Package domain contains the core business entities and value objects.
// These structs are framework-agnostic and represent the heart of the application.
package domain

import "fmt"

// ProviderName identifies a hosted LLM provider (e.g., OpenAI, Anthropic, Google).
type ProviderName string

const (
	ProviderOpenAI      ProviderName = "openai"
	ProviderGroq        ProviderName = "groq"
	ProviderAnthropic   ProviderName = "anthropic"
	ProviderGoogle      ProviderName = "google"
	ProviderHuggingFace ProviderName = "huggingface"

	// DefaultProvider is used when no provider is configured.
	DefaultProvider = ProviderOpenAI
)

// Family is the wire format a provider speaks. Several providers may share a family.
type Family int

const (
	FamilyOpenAI Family = iota
	FamilyAnthropic
	FamilyGoogle
	FamilyHuggingFace
)

func (f Family) String() string {
	switch f {
	case FamilyOpenAI:
		return "openai"
	case FamilyAnthropic:
		return "anthropic"
	case FamilyGoogle:
		return "google"
	case FamilyHuggingFace:
		return "huggingface"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ModelTier selects one of the descriptor's named models.
type ModelTier string

const (
	TierChat     ModelTier = "chat"
	TierFast     ModelTier = "fast"
	TierAdvanced ModelTier = "advanced"
)

// IsValid reports whether t is a known tier. The empty tier is valid and means chat.
func (t ModelTier) IsValid() bool {
	switch t {
	case "", TierChat, TierFast, TierAdvanced:
		return true
	default:
		return false
	}
}

// Models holds the model identifier for each tier.
type Models struct {
	Chat     string `json:"chat" mapstructure:"chat"`
	Fast     string `json:"fast" mapstructure:"fast"`
	Advanced string `json:"advanced" mapstructure:"advanced"`
}

// ForTier returns the model for the tier, falling back to the chat model.
func (m Models) ForTier(t ModelTier) string {
	switch t {
	case TierFast:
		if m.Fast != "" {
			return m.Fast
		}
	case TierAdvanced:
		if m.Advanced != "" {
			return m.Advanced
		}
	}
	return m.Chat
}

// Descriptor describes one hosted provider. It is built once from configuration
// and never mutated afterwards.
type Descriptor struct {
	// Name is the provider key used for selection.
	Name ProviderName `json:"name"`

	// Family selects the request/response codec.
	Family Family `json:"family"`

	// BaseURL is the provider's API root without a trailing slash.
	BaseURL string `json:"base_url"`

	// APIKey is the provider credential.
	APIKey string `json:"-"`

	// Models maps tiers to model identifiers.
	Models Models `json:"models"`

	// Headers are sent with every request in addition to the computed ones.
	Headers map[string]string `json:"headers,omitempty"`

	// MaxTokens is the default output token limit.
	MaxTokens int `json:"max_tokens"`

	// Temperature is the default sampling temperature.
	Temperature float64 `json:"temperature"`
}

// HasCredential reports whether the descriptor carries a non-empty API key.
func (d *Descriptor) HasCredential() bool {
	return d.APIKey != ""
}

// IsValid checks if the descriptor has all required fields.
func (d *Descriptor) IsValid() bool {
	return d.Name != "" && d.BaseURL != "" && d.Models.Chat != ""
}

// Registry is the read-only descriptor table keyed by provider name.
type Registry map[ProviderName]Descriptor

// Lookup returns the descriptor for name.
func (r Registry) Lookup(name ProviderName) (Descriptor, bool) {
	d, ok := r[name]
	return d, ok
}
