package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.ChatModelGPT4o

// ChatCompleter is the slice of the OpenAI client the agent needs.
// client.Chat.Completions satisfies it; tests inject fakes.
type ChatCompleter interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAIAgent is a career worker backed by the OpenAI Chat Completions API.
type OpenAIAgent struct {
	ModelID     string
	Instruction string
	Logger      *slog.Logger

	completions ChatCompleter
}

var _ copilot.Agent = (*OpenAIAgent)(nil)

// NewOpenAIAgent creates an agent using OPENAI_API_KEY unless a client is
// injected via WithChatCompleter.
func NewOpenAIAgent(optFns ...func(*OpenAIAgent)) (*OpenAIAgent, error) {
	agent := &OpenAIAgent{
		ModelID:     DefaultOpenAIModel,
		Instruction: DefaultInstruction,
		Logger:      slog.Default(),
	}
	for _, fn := range optFns {
		fn(agent)
	}
	if agent.completions == nil {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("OPENAI_API_KEY environment variable is required")
		}
		client := openai.NewClient(option.WithAPIKey(apiKey))
		agent.completions = &client.Chat.Completions
	}
	return agent, nil
}

// WithChatCompleter injects the completions client (useful for testing).
func WithChatCompleter(c ChatCompleter) func(*OpenAIAgent) {
	return func(a *OpenAIAgent) {
		a.completions = c
	}
}

// WithOpenAIModel overrides the model ID.
func WithOpenAIModel(modelID string) func(*OpenAIAgent) {
	return func(a *OpenAIAgent) {
		a.ModelID = modelID
	}
}

func (a *OpenAIAgent) Invoke(ctx context.Context, query, sessionID string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: a.ModelID,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(a.Instruction),
			openai.UserMessage(buildPrompt(query)),
		},
		User: openai.String(sessionID),
	}

	response, err := a.completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("no choices returned from OpenAI API")
	}
	return response.Choices[0].Message.Content, nil
}

func (a *OpenAIAgent) Stream(ctx context.Context, query, sessionID string) (<-chan copilot.StreamChunk, error) {
	return streamViaInvoke(a.Logger, func() (string, error) {
		return a.Invoke(ctx, query, sessionID)
	}), nil
}

func (a *OpenAIAgent) SupportedContentTypes() []string {
	return supportedContentTypes
}
