package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeUnwrapsStatusError(t *testing.T) {
	inner := errors.New("rate limit reached")
	err := fmt.Errorf("groq chat completion: %w", &StatusError{StatusCode: 429, Err: inner})

	assert.Equal(t, 429, StatusCode(err))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "groq chat completion: rate limit reached", err.Error())
}

func TestStatusCodeWithoutStatus(t *testing.T) {
	assert.Equal(t, 0, StatusCode(errors.New("dial tcp: connection refused")))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestPlaceholderClientNotConfigured(t *testing.T) {
	_, err := PlaceholderClient{}.Complete(context.Background(), CompletionRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
