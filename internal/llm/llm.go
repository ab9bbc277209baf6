package llm

import (
	"context"
	"errors"
)

// Roles used in chat messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Client abstracts hosted chat-completion providers.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest carries everything a single completion call needs besides the model.
type CompletionRequest struct {
	Messages    []Message
	Temperature float32
}

// Completion is the first choice returned by the provider.
type Completion struct {
	Content string
	Model   string
	Usage   *Usage
}

// Usage reports token accounting when the provider returns it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// StatusError carries the HTTP status a provider answered with.
type StatusError struct {
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusCode returns the provider HTTP status wrapped in err, or 0 when there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient stands in when no API key is available.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	_ = ctx
	_ = req
	return Completion{}, ErrNotConfigured
}
