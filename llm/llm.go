// Package llm provides LLM-backed worker agents for the career copilot.
// Two providers are supported: OpenAI chat models and AWS Bedrock converse
// models. Both produce the same coarse-grained progress stream: an update
// while the model is working, then a final chunk with the full answer.
package llm

import (
	"log/slog"
	"strings"

	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
)

// DefaultInstruction is the system prompt shared by the career worker agents.
const DefaultInstruction = "You are an AI career planning assistant. Plan daily job-search workflows based on available information. " +
	"IMPORTANT: Only make claims that you can support with evidence. If you're unsure about something, " +
	"acknowledge the uncertainty. Use phrases like 'based on available information' and 'according to sources' " +
	"when referencing information. Avoid absolute statements like 'always', 'never', 'everyone' unless you have " +
	"definitive proof. Your goal is to provide accurate, helpful guidance while being transparent about " +
	"what you know and what you don't."

// workingUpdate is the progress text emitted while a completion is in flight.
const workingUpdate = "Planning your career workflow..."

// supportedContentTypes matches what the chat-backed workers can produce.
var supportedContentTypes = []string{"text", "text/plain"}

// buildPrompt combines the user query with session context. Session IDs keep
// multi-turn context on the provider side where supported; here they only
// namespace the conversation.
func buildPrompt(query string) string {
	return strings.TrimSpace(query)
}

// streamViaInvoke adapts a blocking completion into the two-chunk progress
// stream the engine expects. The engine treats a stream ending without a
// complete chunk as a failure.
func streamViaInvoke(logger *slog.Logger, invoke func() (string, error)) <-chan copilot.StreamChunk {
	ch := make(chan copilot.StreamChunk, 2)
	go func() {
		defer close(ch)
		ch <- copilot.StreamChunk{Updates: workingUpdate}
		content, err := invoke()
		if err != nil {
			logger.Warn("Completion failed during streaming", "error", err)
			return
		}
		ch <- copilot.StreamChunk{IsComplete: true, Content: content}
	}()
	return ch
}
