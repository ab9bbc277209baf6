package analyses

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"transcript-backend/internal/llm"
	"transcript-backend/internal/shared/metrics"
	"transcript-backend/internal/shared/telemetry"
)

const llmRetryBaseDelay = 300 * time.Millisecond

type retryingLLM struct {
	base       llm.Client
	maxRetries int
	baseDelay  time.Duration
}

// NewRetryingLLM wraps base so transient failures are retried up to maxRetries times.
func NewRetryingLLM(base llm.Client, maxRetries int) llm.Client {
	if base == nil || maxRetries <= 0 {
		return base
	}
	return retryingLLM{
		base:       base,
		maxRetries: maxRetries,
		baseDelay:  llmRetryBaseDelay,
	}
}

func (r retryingLLM) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	resp, err := r.base.Complete(ctx, req)
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		if err == nil || !shouldRetryLLM(err) {
			return resp, err
		}

		delay := r.baseDelay * time.Duration(1<<(attempt-1))
		telemetry.Warn("llm.retry", map[string]any{
			"attempt":    attempt,
			"delay_ms":   delay.Milliseconds(),
			"request_id": requestIDFromContext(ctx),
			"error":      err.Error(),
		})
		metrics.LLMRetries.Inc()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return llm.Completion{}, ctx.Err()
		}

		resp, err = r.base.Complete(ctx, req)
	}
	return resp, err
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, llm.ErrNotConfigured) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if status := llm.StatusCode(err); status != 0 {
		return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "unexpected eof") {
		return true
	}

	return false
}
