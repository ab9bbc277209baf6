package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcript-backend/internal/llm"
)

func TestCompleteSendsModelMessagesAndTemperature(t *testing.T) {
	var mu sync.Mutex
	var lastBody map[string]any
	var lastAuth, lastPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		lastBody = payload
		lastAuth = r.Header.Get("Authorization")
		lastPath = r.URL.Path
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama-3.1-8b-instant","choices":[{"message":{"role":"assistant","content":"{\"management_tone\":\"Confident\"}"}},{"message":{"role":"assistant","content":"second"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{Provider: "groq", APIKey: "gsk-test", Model: "llama-3.1-8b-instant", BaseURL: server.URL})
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a structured financial analyst."},
			{Role: llm.RoleUser, Content: "Transcript: hello"},
		},
		Temperature: 0.2,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"management_tone":"Confident"}`, out.Content)
	require.NotNil(t, out.Usage)
	assert.Equal(t, 15, out.Usage.TotalTokens)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/chat/completions", lastPath)
	assert.Equal(t, "Bearer gsk-test", lastAuth)
	assert.Equal(t, "llama-3.1-8b-instant", lastBody["model"])
	assert.InDelta(t, 0.2, lastBody["temperature"], 0.0001)
	msgs, ok := lastBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestCompleteMissingChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{Provider: "groq", APIKey: "k", Model: "m", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.CompletionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing choices")
}

func TestCompleteSurfacesHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit reached","type":"tokens"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{Provider: "groq", APIKey: "k", Model: "m", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.CompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, llm.StatusCode(err))
}

func TestCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(Options{Provider: "groq", APIKey: "k", Model: "m", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), llm.CompletionRequest{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "timeout"), "got %v", err)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Options{Provider: "groq", APIKey: "", Model: "m"})
	assert.Error(t, err)
	_, err = NewClient(Options{Provider: "groq", APIKey: "k", Model: " "})
	assert.Error(t, err)
}

func TestResolveBaseURL(t *testing.T) {
	assert.Equal(t, GroqBaseURL, resolveBaseURL("groq", ""))
	assert.Equal(t, OpenAIBaseURL, resolveBaseURL("openai", ""))
	assert.Equal(t, "http://localhost:8080/v1", resolveBaseURL("groq", " http://localhost:8080/v1/ "))
}
