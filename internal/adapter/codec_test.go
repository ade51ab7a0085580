package adapter

import (
	"testing"

	"github.com/hpn/buildmate-ai/internal/domain"
)

func TestGeminiCodec_encode(t *testing.T) {
	p := params{model: "gemini-1.5-flash", maxTokens: 100, temperature: 0.8}

	tests := []struct {
		name     string
		turns    []domain.Turn
		validate func(*testing.T, GeminiRequest)
	}{
		{
			name:  "simple user message",
			turns: []domain.Turn{{Role: domain.RoleUser, Content: "Hello, world!"}},
			validate: func(t *testing.T, req GeminiRequest) {
				if len(req.Contents) != 1 {
					t.Fatalf("len(Contents) = %d, want 1", len(req.Contents))
				}
				if req.Contents[0].Role != "user" {
					t.Errorf("Contents[0].Role = %s, want user", req.Contents[0].Role)
				}
				if req.Contents[0].Parts[0].Text != "Hello, world!" {
					t.Errorf("Contents[0].Parts[0].Text = %s, want 'Hello, world!'", req.Contents[0].Parts[0].Text)
				}
			},
		},
		{
			name: "non-user roles map to model in order",
			turns: []domain.Turn{
				{Role: domain.RoleSystem, Content: "Be brief."},
				{Role: domain.RoleUser, Content: "Hi"},
				{Role: domain.RoleAssistant, Content: "Hello!"},
			},
			validate: func(t *testing.T, req GeminiRequest) {
				want := []string{"model", "user", "model"}
				if len(req.Contents) != len(want) {
					t.Fatalf("len(Contents) = %d, want %d", len(req.Contents), len(want))
				}
				for i, role := range want {
					if req.Contents[i].Role != role {
						t.Errorf("Contents[%d].Role = %s, want %s", i, req.Contents[i].Role, role)
					}
				}
				if req.Contents[0].Parts[0].Text != "Be brief." {
					t.Errorf("Contents[0] text = %s, want system prompt", req.Contents[0].Parts[0].Text)
				}
			},
		},
		{
			name:  "generation config mapping",
			turns: []domain.Turn{{Role: domain.RoleUser, Content: "test"}},
			validate: func(t *testing.T, req GeminiRequest) {
				if req.GenerationConfig.Temperature != 0.8 {
					t.Errorf("Temperature = %v, want 0.8", req.GenerationConfig.Temperature)
				}
				if req.GenerationConfig.MaxOutputTokens != 100 {
					t.Errorf("MaxOutputTokens = %d, want 100", req.GenerationConfig.MaxOutputTokens)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := geminiCodec{}.encode(tt.turns, p).(GeminiRequest)
			if !ok {
				t.Fatal("encode did not return a GeminiRequest")
			}
			tt.validate(t, req)
		})
	}
}

func TestGeminiCodec_endpoint(t *testing.T) {
	d := &domain.Descriptor{BaseURL: "https://generativelanguage.googleapis.com/v1beta", APIKey: "AIza+key"}

	got := geminiCodec{}.endpoint(d, "gemini-1.5-pro")
	want := "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-pro:generateContent?key=AIza%2Bkey"
	if got != want {
		t.Errorf("endpoint() = %s, want %s", got, want)
	}
}

func TestAnthropicCodec_encodeJoinsSystemTurns(t *testing.T) {
	turns := []domain.Turn{
		{Role: domain.RoleSystem, Content: "You are a site foreman."},
		{Role: domain.RoleUser, Content: "Hi"},
		{Role: domain.RoleSystem, Content: "Answer in metric units."},
	}

	req, ok := anthropicCodec{}.encode(turns, params{model: "claude", maxTokens: 10}).(AnthropicRequest)
	if !ok {
		t.Fatal("encode did not return an AnthropicRequest")
	}

	if req.System != "You are a site foreman.\n\nAnswer in metric units." {
		t.Errorf("System = %q", req.System)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("Messages = %+v, want the single user turn", req.Messages)
	}
	if req.MaxTokens != 10 {
		t.Errorf("MaxTokens = %d, want 10", req.MaxTokens)
	}
}

func TestHuggingFaceCodec_endpoint(t *testing.T) {
	d := &domain.Descriptor{BaseURL: "https://api-inference.huggingface.co"}

	got := huggingFaceCodec{}.endpoint(d, "mistralai/Mistral-7B-Instruct-v0.3")
	want := "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.3"
	if got != want {
		t.Errorf("endpoint() = %s, want %s", got, want)
	}
}

func TestCodecFor(t *testing.T) {
	for _, f := range []domain.Family{domain.FamilyOpenAI, domain.FamilyAnthropic, domain.FamilyGoogle, domain.FamilyHuggingFace} {
		if _, err := codecFor(f); err != nil {
			t.Errorf("codecFor(%s) error = %v", f, err)
		}
	}
	if _, err := codecFor(domain.Family(99)); err == nil {
		t.Error("codecFor(99) should fail")
	}
}

func TestUsageOf(t *testing.T) {
	if usageOf(nil) != nil {
		t.Error("nil usage should stay nil")
	}
	if usageOf([]byte("null")) != nil {
		t.Error("null usage should become nil")
	}
	if string(usageOf([]byte(`{"a":1}`))) != `{"a":1}` {
		t.Error("usage should pass through unchanged")
	}
}
