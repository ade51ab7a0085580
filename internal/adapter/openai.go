package adapter

import (
	"encoding/json"
	"net/http"

	"github.com/hpn/buildmate-ai/internal/domain"
)

// OpenAIRequest represents an OpenAI-compatible chat completion request.
type OpenAIRequest struct {
	// Model specifies which model to use (e.g., "gpt-4o-mini").
	Model string `json:"model"`

	// Messages contains the conversation history.
	Messages []OpenAIMessage `json:"messages"`

	// MaxTokens limits the response length.
	MaxTokens int `json:"max_tokens"`

	// Temperature controls randomness (0.0-2.0).
	Temperature float64 `json:"temperature"`
}

// OpenAIMessage represents a single message in the conversation.
type OpenAIMessage struct {
	// Role is one of: "system", "user", "assistant".
	Role string `json:"role"`

	// Content is the message text content.
	Content string `json:"content"`
}

// OpenAIResponse holds the parts of a chat completion response we read.
type OpenAIResponse struct {
	Choices []OpenAIChoice  `json:"choices"`
	Usage   json.RawMessage `json:"usage"`
}

// OpenAIChoice represents a single completion choice.
type OpenAIChoice struct {
	Message struct {
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// openAICodec serves OpenAI and every provider exposing the same API.
type openAICodec struct{}

func (openAICodec) endpoint(d *domain.Descriptor, _ string) string {
	return d.BaseURL + "/chat/completions"
}

func (openAICodec) authenticate(h http.Header, d *domain.Descriptor) {
	setBearer(h, d)
}

func (openAICodec) encode(turns []domain.Turn, p params) any {
	messages := make([]OpenAIMessage, len(turns))
	for i, t := range turns {
		messages[i] = OpenAIMessage{Role: string(t.Role), Content: t.Content}
	}
	return OpenAIRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}
}

func (openAICodec) decode(body []byte) (domain.Completion, error) {
	const path = "choices[0].message.content"

	var resp OpenAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Completion{}, malformed(path, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return domain.Completion{}, missing(path)
	}

	return domain.Completion{
		Content: *resp.Choices[0].Message.Content,
		Usage:   usageOf(resp.Usage),
	}, nil
}
