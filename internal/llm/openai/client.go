package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"transcript-backend/internal/llm"
	"transcript-backend/internal/shared/metrics"
	"transcript-backend/internal/shared/telemetry"
)

const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OpenAIBaseURL = "https://api.openai.com/v1"

	defaultTimeout = 60 * time.Second
)

// Options configures a Client.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// Client implements llm.Client against any OpenAI-compatible chat completions API.
type Client struct {
	api      *goopenai.Client
	provider string
	model    string
}

// NewClient constructs a long-lived client. Callers share one instance across requests.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("API key is required for provider %q", opts.Provider)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = resolveBaseURL(opts.Provider, opts.BaseURL)
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:      goopenai.NewClientWithConfig(cfg),
		provider: opts.Provider,
		model:    opts.Model,
	}, nil
}

// Complete sends one chat completion request and returns the first choice verbatim.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, goopenai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.LLMRequestDuration.WithLabelValues(c.provider, "error").Observe(elapsed)
		if code := statusCode(err); code != 0 {
			err = &llm.StatusError{StatusCode: code, Err: err}
		}
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Completion{}, fmt.Errorf("%s request timeout: %w", c.provider, err)
		}
		return llm.Completion{}, fmt.Errorf("%s chat completion: %w", c.provider, err)
	}
	metrics.LLMRequestDuration.WithLabelValues(c.provider, "ok").Observe(elapsed)

	if len(resp.Choices) == 0 {
		return llm.Completion{}, fmt.Errorf("%s response missing choices", c.provider)
	}

	out := llm.Completion{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}
	if resp.Usage.TotalTokens > 0 {
		out.Usage = &llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	logUsage(c.provider, c.model, out.Usage)
	return out, nil
}

func statusCode(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func resolveBaseURL(provider, override string) string {
	if trimmed := strings.TrimRight(strings.TrimSpace(override), "/"); trimmed != "" {
		return trimmed
	}
	if provider == "openai" {
		return OpenAIBaseURL
	}
	return GroqBaseURL
}

func logUsage(provider, model string, usage *llm.Usage) {
	fields := map[string]any{"provider": provider, "model": model}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
