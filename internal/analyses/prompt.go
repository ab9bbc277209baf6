package analyses

import (
	_ "embed"
	"strings"

	"transcript-backend/internal/llm"
)

// MaxTranscriptChars bounds the transcript prefix embedded in the prompt.
const MaxTranscriptChars = 12000

const systemPrompt = "You are a structured financial analyst."

//go:embed prompts/transcript_v1.txt
var transcriptPromptV1 string

// BuildPrompt returns the system and user messages for one transcript.
func BuildPrompt(transcript string) []llm.Message {
	user := strings.Replace(transcriptPromptV1, "{{TRANSCRIPT}}", Truncate(transcript, MaxTranscriptChars), 1)
	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: user},
	}
}

// Truncate keeps at most max characters (code points) of s.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
