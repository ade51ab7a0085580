package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hpn/buildmate-ai/internal/domain"
)

// AnthropicRequest represents a Messages API request.
type AnthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []AnthropicMessage `json:"messages"`
}

// AnthropicMessage is one user or assistant message.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicResponse holds the parts of a Messages API response we read.
type AnthropicResponse struct {
	Content []struct {
		Type string  `json:"type"`
		Text *string `json:"text"`
	} `json:"content"`
	StopReason string          `json:"stop_reason"`
	Usage      json.RawMessage `json:"usage"`
}

type anthropicCodec struct{}

func (anthropicCodec) endpoint(d *domain.Descriptor, _ string) string {
	return d.BaseURL + "/messages"
}

func (anthropicCodec) authenticate(h http.Header, d *domain.Descriptor) {
	h.Set("x-api-key", d.APIKey)
	if h.Get("anthropic-version") == "" {
		h.Set("anthropic-version", domain.AnthropicVersion)
	}
}

// encode keeps only user and assistant turns in messages.
// System turns go to the top-level system field, joined in order.
func (anthropicCodec) encode(turns []domain.Turn, p params) any {
	req := AnthropicRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages:    make([]AnthropicMessage, 0, len(turns)),
	}

	var system []string
	for _, t := range turns {
		switch t.Role {
		case domain.RoleSystem:
			system = append(system, t.Content)
		case domain.RoleUser, domain.RoleAssistant:
			req.Messages = append(req.Messages, AnthropicMessage{Role: string(t.Role), Content: t.Content})
		}
	}
	req.System = strings.Join(system, "\n\n")

	return req
}

func (anthropicCodec) decode(body []byte) (domain.Completion, error) {
	const path = "content[0].text"

	var resp AnthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Completion{}, malformed(path, err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == nil {
		return domain.Completion{}, missing(path)
	}

	return domain.Completion{
		Content: *resp.Content[0].Text,
		Usage:   usageOf(resp.Usage),
	}, nil
}
