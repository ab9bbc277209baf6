package bootstrap

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"transcript-backend/internal/analyses"
	"transcript-backend/internal/llm"
	openai "transcript-backend/internal/llm/openai"
	"transcript-backend/internal/services/health"
	"transcript-backend/internal/shared/config"
	"transcript-backend/internal/shared/server"
	"transcript-backend/internal/shared/telemetry"
	"transcript-backend/internal/transcripts"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	LLM               llm.Client
	AnalysesService   *analyses.Service
	TranscriptService *transcripts.Service
	TranscriptHandler *transcripts.Handler
}

// Build prepares shared dependencies and the router using the configured provider.
func Build(cfg config.Config) (*App, error) {
	client, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	return BuildWithLLM(cfg, client)
}

// BuildWithLLM wires the app around an already constructed completion client.
// The client is shared by every request for the lifetime of the process.
func BuildWithLLM(cfg config.Config, client llm.Client) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if client == nil {
		return nil, errors.New("llm client is required")
	}

	app := &App{
		Config: cfg,
		LLM:    analyses.NewRetryingLLM(client, cfg.LLMMaxRetries),
	}

	app.AnalysesService = &analyses.Service{
		LLM:          app.LLM,
		Temperature:  cfg.LLMTemperature,
		StrictSchema: cfg.StrictSchema,
	}
	app.TranscriptService = transcripts.NewService(app.AnalysesService)
	app.TranscriptHandler = transcripts.NewHandler(app.TranscriptService, health.NewService())
	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		TranscriptHandler: app.TranscriptHandler,
	})

	return app, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		telemetry.Warn("bootstrap.llm_not_configured", map[string]any{
			"provider": cfg.LLMProvider,
			"hint":     "set GROQ_API_KEY or OPENAI_API_KEY; uploads will fail until then",
		})
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(openai.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
		Timeout:  cfg.LLMTimeout,
	})
}
