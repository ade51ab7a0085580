package domain

const (
	// DefaultMaxTokens is the output token limit used when a provider sets none.
	DefaultMaxTokens = 1000

	// DefaultTemperature is the sampling temperature used when a provider sets none.
	DefaultTemperature = 0.7

	// AnthropicVersion is the API version header Anthropic requires.
	AnthropicVersion = "2023-06-01"
)

// Catalog returns the built-in defaults for every supported provider, without credentials.
// The returned registry is a fresh copy on each call.
func Catalog() Registry {
	return Registry{
		ProviderOpenAI: {
			Name:    ProviderOpenAI,
			Family:  FamilyOpenAI,
			BaseURL: "https://api.openai.com/v1",
			Models: Models{
				Chat:     "gpt-4o-mini",
				Fast:     "gpt-4o-mini",
				Advanced: "gpt-4o",
			},
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		ProviderGroq: {
			Name:    ProviderGroq,
			Family:  FamilyOpenAI,
			BaseURL: "https://api.groq.com/openai/v1",
			Models: Models{
				Chat:     "llama-3.1-70b-versatile",
				Fast:     "llama-3.1-8b-instant",
				Advanced: "llama-3.1-70b-versatile",
			},
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		ProviderAnthropic: {
			Name:    ProviderAnthropic,
			Family:  FamilyAnthropic,
			BaseURL: "https://api.anthropic.com/v1",
			Models: Models{
				Chat:     "claude-3-5-sonnet-20241022",
				Fast:     "claude-3-5-haiku-20241022",
				Advanced: "claude-3-opus-20240229",
			},
			Headers: map[string]string{
				"anthropic-version": AnthropicVersion,
			},
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		ProviderGoogle: {
			Name:    ProviderGoogle,
			Family:  FamilyGoogle,
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Models: Models{
				Chat:     "gemini-1.5-flash",
				Fast:     "gemini-1.5-flash-8b",
				Advanced: "gemini-1.5-pro",
			},
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		ProviderHuggingFace: {
			Name:    ProviderHuggingFace,
			Family:  FamilyHuggingFace,
			BaseURL: "https://api-inference.huggingface.co",
			Models: Models{
				Chat:     "mistralai/Mistral-7B-Instruct-v0.3",
				Fast:     "microsoft/Phi-3-mini-4k-instruct",
				Advanced: "meta-llama/Meta-Llama-3-70B-Instruct",
			},
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
	}
}

// ProviderNames returns the supported provider names in a stable order.
func ProviderNames() []ProviderName {
	return []ProviderName{
		ProviderOpenAI,
		ProviderGroq,
		ProviderAnthropic,
		ProviderGoogle,
		ProviderHuggingFace,
	}
}

// IsKnownProvider reports whether name is a supported provider.
func IsKnownProvider(name ProviderName) bool {
	for _, n := range ProviderNames() {
		if n == name {
			return true
		}
	}
	return false
}
