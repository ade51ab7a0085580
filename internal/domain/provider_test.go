package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModels_ForTier(t *testing.T) {
	m := Models{Chat: "c", Fast: "f", Advanced: "a"}

	tests := []struct {
		tier ModelTier
		want string
	}{
		{"", "c"},
		{TierChat, "c"},
		{TierFast, "f"},
		{TierAdvanced, "a"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.Equal(t, tt.want, m.ForTier(tt.tier))
		})
	}

	// Missing tiers fall back to chat.
	assert.Equal(t, "c", Models{Chat: "c"}.ForTier(TierAdvanced))
}

func TestCatalog(t *testing.T) {
	cat := Catalog()

	assert.Len(t, cat, len(ProviderNames()))
	for _, name := range ProviderNames() {
		d, ok := cat.Lookup(name)
		if assert.True(t, ok, "missing %s", name) {
			assert.True(t, d.IsValid(), "%s descriptor invalid", name)
			assert.False(t, d.HasCredential(), "%s must ship without a credential", name)
		}
	}

	assert.Equal(t, FamilyOpenAI, cat[ProviderGroq].Family)
	assert.Equal(t, AnthropicVersion, cat[ProviderAnthropic].Headers["anthropic-version"])

	// Each call returns an independent copy.
	cat[ProviderAnthropic].Headers["anthropic-version"] = "changed"
	assert.Equal(t, AnthropicVersion, Catalog()[ProviderAnthropic].Headers["anthropic-version"])
}

func TestIsKnownProvider(t *testing.T) {
	assert.True(t, IsKnownProvider(ProviderHuggingFace))
	assert.False(t, IsKnownProvider("cohere"))
	assert.False(t, IsKnownProvider(""))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleSystem.IsValid())
	assert.True(t, RoleAssistant.IsValid())
	assert.False(t, Role("function").IsValid())
}

func TestFamily_String(t *testing.T) {
	assert.Equal(t, "google", FamilyGoogle.String())
	assert.Equal(t, "family(42)", Family(42).String())
}
