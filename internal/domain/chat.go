// Package domain contains the core business entities and value objects.
package domain

import "encoding/json"

// Role is the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid reports whether r is one of the supported roles.
func (r Role) IsValid() bool {
	return r == RoleSystem || r == RoleUser || r == RoleAssistant
}

// Turn is one message in a conversation. A conversation is an ordered []Turn.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options overrides the descriptor defaults for a single completion.
// Zero values mean "use the provider default".
type Options struct {
	// Tier picks one of the descriptor's models. Ignored when Model is set.
	Tier ModelTier `json:"tier,omitempty"`

	// Model is an explicit model identifier.
	Model string `json:"model,omitempty"`

	// MaxTokens limits the response length.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Temperature controls randomness.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Completion is the normalized result of a chat completion.
type Completion struct {
	// Content is the generated text.
	Content string `json:"content"`

	// Usage is the provider's usage accounting, passed through as-is.
	// It is nil when the provider reports none.
	Usage json.RawMessage `json:"usage,omitempty"`

	// Model is the model the request was sent to.
	Model string `json:"model,omitempty"`
}
