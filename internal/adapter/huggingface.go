package adapter

import (
	"encoding/json"
	"net/http"

	"github.com/hpn/buildmate-ai/internal/domain"
)

// HuggingFaceRequest is a text-generation Inference API request.
type HuggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters HuggingFaceParameters `json:"parameters"`
}

// HuggingFaceParameters are the generation parameters.
type HuggingFaceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

// HuggingFaceGeneration is one element of the response array.
type HuggingFaceGeneration struct {
	GeneratedText *string `json:"generated_text"`
}

type huggingFaceCodec struct{}

func (huggingFaceCodec) endpoint(d *domain.Descriptor, model string) string {
	return d.BaseURL + "/models/" + model
}

func (huggingFaceCodec) authenticate(h http.Header, d *domain.Descriptor) {
	setBearer(h, d)
}

// encode sends only the last turn's content. The Inference API takes a single prompt.
func (huggingFaceCodec) encode(turns []domain.Turn, p params) any {
	return HuggingFaceRequest{
		Inputs: turns[len(turns)-1].Content,
		Parameters: HuggingFaceParameters{
			MaxNewTokens: p.maxTokens,
			Temperature:  p.temperature,
		},
	}
}

// decode reads a bare array. The API reports no usage.
func (huggingFaceCodec) decode(body []byte) (domain.Completion, error) {
	const path = "[0].generated_text"

	var resp []HuggingFaceGeneration
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Completion{}, malformed(path, err)
	}
	if len(resp) == 0 || resp[0].GeneratedText == nil {
		return domain.Completion{}, missing(path)
	}

	return domain.Completion{Content: *resp[0].GeneratedText}, nil
}
