package security

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "OpenAI key",
			input:    "Using key sk-1234567890abcdefghijklmnopqrstuvwxyz",
			contains: RedactedPlaceholder,
			excludes: "sk-1234567890",
		},
		{
			name:     "Anthropic key",
			input:    "x-api-key: sk-ant-REDACTED",
			contains: RedactedPlaceholder,
			excludes: "api03",
		},
		{
			name:     "Hugging Face token",
			input:    "token hf_abcdefghijklmnopqrstuvwxyz0123",
			contains: RedactedPlaceholder,
			excludes: "hf_abc",
		},
		{
			name:     "Google key in URL",
			input:    "POST https://example.com/models/gemini:generateContent?key=AIzaSyABCDEFG",
			contains: "generateContent?" + RedactedPlaceholder,
			excludes: "AIzaSyABCDEFG",
		},
		{
			name:     "No sensitive data",
			input:    "google API error [429]: quota",
			contains: "google API error [429]: quota",
			excludes: RedactedPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Redact(tt.input)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("Redact() = %q, should contain %q", result, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(result, tt.excludes) {
				t.Errorf("Redact() = %q, should NOT contain %q", result, tt.excludes)
			}
		})
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "key param",
			input: "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent?key=secret",
			want:  "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent?key=%5BREDACTED%5D",
		},
		{
			name:  "no credential",
			input: "https://api.openai.com/v1/chat/completions",
			want:  "https://api.openai.com/v1/chat/completions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactURL(tt.input); got != tt.want {
				t.Errorf("RedactURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedactedHandler(t *testing.T) {
	var buf bytes.Buffer
	baseHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewRedactedHandler(baseHandler))

	logger.Info("chat completed",
		slog.String("api_key", "short-but-secret"),
		slog.String("error", "dial https://x/y?key=AIzaSyABCDEFGHIJKLMNOPQRSTUVWXYZ123456789"),
		slog.Int("max_tokens", 256),
	)

	output := buf.String()

	if strings.Contains(output, "short-but-secret") {
		t.Errorf("Log output contains raw API key: %s", output)
	}
	if strings.Contains(output, "AIzaSy") {
		t.Errorf("Log output contains Google key: %s", output)
	}
	if !strings.Contains(output, "max_tokens=256") {
		t.Errorf("Token counters should not be redacted: %s", output)
	}
	if !strings.Contains(output, "chat completed") {
		t.Errorf("Log output missing message: %s", output)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key      string
		expected bool
	}{
		{"authorization", true},
		{"api_key", true},
		{"password", true},
		{"token", true},
		{"access_token", true},
		{"max_tokens", false},
		{"status", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := isSensitiveKey(tt.key); got != tt.expected {
				t.Errorf("isSensitiveKey(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestRedactedHandlerEnabled(t *testing.T) {
	baseHandler := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	redactedHandler := NewRedactedHandler(baseHandler)

	if redactedHandler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Should not be enabled for Info level when base is Warn")
	}
	if !redactedHandler.Enabled(context.Background(), slog.LevelError) {
		t.Error("Should be enabled for Error level when base is Warn")
	}
}
