package analyses

import (
	"context"
	"sync"

	"transcript-backend/internal/llm"
)

const validResultJSON = `{
  "management_tone": "Confident",
  "confidence_level": "High",
  "key_positives": ["Revenue up 12%"],
  "key_concerns": ["Input costs"],
  "forward_guidance": "Raised FY guidance",
  "capacity_utilization_trends": "Not Mentioned",
  "growth_initiatives": ["New plant in Pune"]
}`

type stubLLM struct {
	mu        sync.Mutex
	responses []stubResponse
	requests  []llm.CompletionRequest
}

type stubResponse struct {
	content string
	err     error
}

func newStubLLM(responses ...stubResponse) *stubLLM {
	return &stubLLM{responses: responses}
}

func (s *stubLLM) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		return llm.Completion{}, context.DeadlineExceeded
	}
	next := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	if next.err != nil {
		return llm.Completion{}, next.err
	}
	return llm.Completion{Content: next.content}, nil
}

func (s *stubLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *stubLLM) lastRequest() llm.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}
