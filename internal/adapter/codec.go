package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hpn/buildmate-ai/internal/domain"
)

// params are the effective per-call settings after defaults are applied.
type params struct {
	model       string
	maxTokens   int
	temperature float64
}

// codec translates between normalized turns and one provider family's wire format.
type codec interface {
	// endpoint returns the full URL for a completion with model.
	endpoint(d *domain.Descriptor, model string) string

	// authenticate adds the credential headers, if the family uses headers.
	authenticate(h http.Header, d *domain.Descriptor)

	// encode builds the JSON request body.
	encode(turns []domain.Turn, p params) any

	// decode extracts content and usage. Missing paths yield a *ShapeError.
	decode(body []byte) (domain.Completion, error)
}

func codecFor(f domain.Family) (codec, error) {
	switch f {
	case domain.FamilyOpenAI:
		return openAICodec{}, nil
	case domain.FamilyAnthropic:
		return anthropicCodec{}, nil
	case domain.FamilyGoogle:
		return geminiCodec{}, nil
	case domain.FamilyHuggingFace:
		return huggingFaceCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported provider family %s", f)
	}
}

func setBearer(h http.Header, d *domain.Descriptor) {
	h.Set("Authorization", "Bearer "+d.APIKey)
}

// usageOf normalizes an absent or null usage block to nil.
func usageOf(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return raw
}
