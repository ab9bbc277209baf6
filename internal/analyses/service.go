package analyses

import (
	"context"
	"errors"
	"fmt"

	"transcript-backend/internal/llm"
	"transcript-backend/internal/shared/telemetry"
)

const defaultTemperature = 0.2

// Service turns transcript text into a Result with one completion call.
type Service struct {
	LLM         llm.Client
	// Temperature values of zero or below use 0.2.
	Temperature float32
	// StrictSchema rejects parsed output that is missing fields or has wrong types.
	// When false the result is rendered with blank sections instead.
	StrictSchema bool
}

// Analyze builds the prompt, calls the completion endpoint and parses its output.
func (s *Service) Analyze(ctx context.Context, transcript string) (Result, error) {
	if s.LLM == nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExternalService, llm.ErrNotConfigured)
	}
	temp := s.Temperature
	if temp <= 0 {
		temp = defaultTemperature
	}

	completion, err := s.LLM.Complete(ctx, llm.CompletionRequest{
		Messages:    BuildPrompt(transcript),
		Temperature: temp,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	raw := completion.Content
	result, violations, err := ParseResult(raw)
	if err != nil {
		telemetry.Error("analysis.invalid_json", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"raw_output": raw,
			"error":      err.Error(),
		})
		return Result{}, err
	}
	if len(violations) > 0 {
		fields := map[string]any{
			"request_id": requestIDFromContext(ctx),
			"raw_output": raw,
			"violations": violations,
		}
		if s.StrictSchema {
			telemetry.Error("analysis.schema_mismatch", fields)
			return Result{}, fmt.Errorf("%w: %v", ErrSchemaParse, violations)
		}
		telemetry.Warn("analysis.schema_mismatch", fields)
	}

	return result, nil
}
