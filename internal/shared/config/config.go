package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"

	DefaultTemperature = 0.2
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	LLMProvider       string
	LLMModel          string
	LLMBaseURL        string
	LLMAPIKey         string
	LLMTemperature    float32
	LLMTimeout        time.Duration
	LLMMaxRetries     int
	StrictSchema      bool
	UploadMemoryBytes int64
	LogLevel          string
	LogFormat         string
}

// Load reads configuration from .env files and environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")
	return FromViper(newViper())
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	provider := normalizeProvider(v.GetString("LLM_PROVIDER"))

	timeout := time.Duration(v.GetInt("LLM_TIMEOUT_SECONDS")) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	retries := v.GetInt("LLM_MAX_RETRIES")
	if retries < 0 {
		retries = 0
	}
	// The completion request omits a zero temperature, so non-positive values mean the default.
	temperature := float32(v.GetFloat64("LLM_TEMPERATURE"))
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	memBytes := v.GetInt64("UPLOAD_MEMORY_BYTES")
	if memBytes <= 0 {
		memBytes = 64 << 20
	}

	return Config{
		Port:              v.GetString("PORT"),
		Env:               normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin:   splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		LLMProvider:       provider,
		LLMModel:          strings.TrimSpace(v.GetString("LLM_MODEL")),
		LLMBaseURL:        strings.TrimSpace(v.GetString("LLM_BASE_URL")),
		LLMAPIKey:         apiKeyFor(v, provider),
		LLMTemperature:    temperature,
		LLMTimeout:        timeout,
		LLMMaxRetries:     retries,
		StrictSchema:      v.GetBool("ANALYSIS_STRICT_SCHEMA"),
		UploadMemoryBytes: memBytes,
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("LLM_PROVIDER", ProviderGroq)
	v.SetDefault("LLM_MODEL", "llama-3.1-8b-instant")
	v.SetDefault("LLM_BASE_URL", "")
	v.SetDefault("GROQ_API_KEY", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("LLM_TEMPERATURE", DefaultTemperature)
	v.SetDefault("LLM_TIMEOUT_SECONDS", 60)
	v.SetDefault("LLM_MAX_RETRIES", 0)
	v.SetDefault("ANALYSIS_STRICT_SCHEMA", true)
	v.SetDefault("UPLOAD_MEMORY_BYTES", 64<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	return v
}

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		_ = godotenv.Load(path)
	}
}

func apiKeyFor(v *viper.Viper, provider string) string {
	switch provider {
	case ProviderOpenAI:
		return strings.TrimSpace(v.GetString("OPENAI_API_KEY"))
	default:
		return strings.TrimSpace(v.GetString("GROQ_API_KEY"))
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderOpenAI:
		return ProviderOpenAI
	default:
		return ProviderGroq
	}
}
