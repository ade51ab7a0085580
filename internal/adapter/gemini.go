package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hpn/buildmate-ai/internal/domain"
)

// GeminiRequest represents a Gemini generateContent request.
type GeminiRequest struct {
	Contents         []GeminiContent        `json:"contents"`
	GenerationConfig GeminiGenerationConfig `json:"generationConfig"`
}

// GeminiContent represents a content block in Gemini format.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of a content block.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiGenerationConfig contains generation parameters.
type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GeminiResponse represents a Gemini generateContent response.
type GeminiResponse struct {
	Candidates    []GeminiCandidate `json:"candidates"`
	UsageMetadata json.RawMessage   `json:"usageMetadata"`
}

// GeminiCandidate represents a single generated candidate.
type GeminiCandidate struct {
	Content struct {
		Role  string `json:"role"`
		Parts []struct {
			Text *string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

// geminiCodec speaks the Google Generative Language API.
// The credential travels in the query string, not in a header.
type geminiCodec struct{}

func (geminiCodec) endpoint(d *domain.Descriptor, model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", d.BaseURL, url.PathEscape(model), url.QueryEscape(d.APIKey))
}

func (geminiCodec) authenticate(http.Header, *domain.Descriptor) {}

// encode maps every turn to a content block. "user" stays "user"; any other role is "model".
func (geminiCodec) encode(turns []domain.Turn, p params) any {
	req := GeminiRequest{
		Contents: make([]GeminiContent, len(turns)),
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     p.temperature,
			MaxOutputTokens: p.maxTokens,
		},
	}
	for i, t := range turns {
		req.Contents[i] = GeminiContent{
			Role:  geminiRole(t.Role),
			Parts: []GeminiPart{{Text: t.Content}},
		}
	}
	return req
}

func (geminiCodec) decode(body []byte) (domain.Completion, error) {
	const path = "candidates[0].content.parts[0].text"

	var resp GeminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Completion{}, malformed(path, err)
	}
	if len(resp.Candidates) == 0 {
		return domain.Completion{}, missing(path)
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return domain.Completion{}, missing(path)
	}

	return domain.Completion{
		Content: *parts[0].Text,
		Usage:   usageOf(resp.UsageMetadata),
	}, nil
}

func geminiRole(r domain.Role) string {
	if r == domain.RoleUser {
		return "user"
	}
	return "model"
}
