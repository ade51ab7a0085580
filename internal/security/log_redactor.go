// Package security keeps provider credentials out of logs and error messages.
package security

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// RedactedPlaceholder replaces any credential found in output.
const RedactedPlaceholder = "[REDACTED]"

// sensitivePatterns contains regex patterns for the credential formats of supported providers.
// More specific prefixes come first so they are replaced whole.
var sensitivePatterns = []*regexp.Regexp{
	// Anthropic keys: sk-ant-...
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]{20,}`),
	// OpenAI keys: sk-... and sk-proj-...
	regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),
	// Groq keys: gsk_...
	regexp.MustCompile(`gsk_[a-zA-Z0-9]{20,}`),
	// Hugging Face tokens: hf_...
	regexp.MustCompile(`hf_[a-zA-Z0-9]{20,}`),
	// Google AI keys: AIza...
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),
	// Bearer tokens in header dumps
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_.-]{20,}`),
	// Keys in query strings: key=...
	regexp.MustCompile(`key=[^&\s"]+`),
	// Anything else long enough to be a key
	regexp.MustCompile(`[a-zA-Z0-9_-]{40,}`),
}

// credentialParams are query parameters that carry credentials.
var credentialParams = []string{"key", "api_key", "access_token"}

// Redact scans a string for sensitive patterns and replaces them.
func Redact(s string) string {
	result := s
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedPlaceholder)
	}
	return result
}

// RedactURL replaces credential query parameters in rawURL.
// Unparseable input is passed through Redact instead.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Redact(rawURL)
	}

	q := u.Query()
	changed := false
	for _, p := range credentialParams {
		if q.Has(p) {
			q.Set(p, RedactedPlaceholder)
			changed = true
		}
	}
	if !changed {
		return rawURL
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// RedactedHandler wraps an slog.Handler and redacts sensitive data from log records.
type RedactedHandler struct {
	inner slog.Handler
}

// NewRedactedHandler wraps inner so that every record it handles is redacted first.
func NewRedactedHandler(inner slog.Handler) *RedactedHandler {
	return &RedactedHandler{inner: inner}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts the message and attributes of r before passing it on.
func (h *RedactedHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, Redact(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RedactedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactedHandler{inner: h.inner.WithAttrs(redacted)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactedHandler) WithGroup(name string) slog.Handler {
	return &RedactedHandler{inner: h.inner.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if isSensitiveKey(strings.ToLower(a.Key)) {
		return slog.String(a.Key, RedactedPlaceholder)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, Redact(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		redacted := make([]any, len(group))
		for i, ga := range group {
			redacted[i] = redactAttr(ga)
		}
		return slog.Group(a.Key, redacted...)
	}

	if v, ok := a.Value.Any().([]string); ok {
		redacted := make([]string, len(v))
		for i, s := range v {
			redacted[i] = Redact(s)
		}
		return slog.Any(a.Key, redacted)
	}

	return a
}

// isSensitiveKey checks if an attribute key is known to carry a credential.
// Token counters such as "max_tokens" are not sensitive.
func isSensitiveKey(key string) bool {
	for _, k := range []string{"authorization", "api_key", "apikey", "api-key", "secret", "password", "credential", "bearer"} {
		if strings.Contains(key, k) {
			return true
		}
	}
	return key == "token" || strings.HasSuffix(key, "_token")
}
