package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LLM_PROVIDER", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_TIMEOUT_SECONDS", "LLM_MAX_RETRIES", "ANALYSIS_STRICT_SCHEMA", "GROQ_API_KEY", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := FromViper(newViper())

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ProviderGroq, cfg.LLMProvider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLMModel)
	assert.InDelta(t, 0.2, cfg.LLMTemperature, 0.0001)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 0, cfg.LLMMaxRetries)
	assert.True(t, cfg.StrictSchema)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigin)
	assert.Empty(t, cfg.LLMAPIKey)
}

func TestLoadReadsProviderKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("GROQ_API_KEY", "gsk-ignored")
	t.Setenv("LLM_MAX_RETRIES", "-3")
	t.Setenv("ANALYSIS_STRICT_SCHEMA", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")

	cfg := FromViper(newViper())

	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	assert.Equal(t, 0, cfg.LLMMaxRetries)
	assert.False(t, cfg.StrictSchema)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigin)
}

func TestNormalizeEnv(t *testing.T) {
	tests := map[string]string{
		"prod":       "production",
		"Production": "production",
		"staging":    "staging",
		"local":      "local",
		"":           "dev",
		"whatever":   "dev",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeEnv(in), "normalizeEnv(%q)", in)
	}
}

func TestNonPositiveTemperatureUsesDefault(t *testing.T) {
	for _, raw := range []string{"0", "-0.5"} {
		t.Setenv("LLM_TEMPERATURE", raw)
		cfg := FromViper(newViper())
		assert.InDelta(t, DefaultTemperature, cfg.LLMTemperature, 0.0001, raw)
	}

	t.Setenv("LLM_TEMPERATURE", "0.7")
	cfg := FromViper(newViper())
	assert.InDelta(t, 0.7, cfg.LLMTemperature, 0.0001)
}
