package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
)

// DefaultBedrockModel is used when no model is configured.
const DefaultBedrockModel = "anthropic.claude-3-5-sonnet-20240620-v1:0"

// BedrockClient is the slice of the Bedrock runtime client the agent needs.
type BedrockClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockAgent is a career worker backed by the AWS Bedrock Converse API.
type BedrockAgent struct {
	ModelID     string
	Instruction string
	Logger      *slog.Logger

	client BedrockClient
}

var _ copilot.Agent = (*BedrockAgent)(nil)

// NewBedrockAgent creates an agent using the default AWS config unless a
// client is injected via WithBedrockClient.
func NewBedrockAgent(ctx context.Context, optFns ...func(*BedrockAgent)) (*BedrockAgent, error) {
	agent := &BedrockAgent{
		ModelID:     DefaultBedrockModel,
		Instruction: DefaultInstruction,
		Logger:      slog.Default(),
	}
	for _, fn := range optFns {
		fn(agent)
	}
	if agent.client == nil {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		agent.client = bedrockruntime.NewFromConfig(cfg)
	}
	return agent, nil
}

// WithBedrockClient injects the Bedrock runtime client (useful for testing).
func WithBedrockClient(c BedrockClient) func(*BedrockAgent) {
	return func(a *BedrockAgent) {
		a.client = c
	}
}

// WithBedrockModel overrides the model ID.
func WithBedrockModel(modelID string) func(*BedrockAgent) {
	return func(a *BedrockAgent) {
		a.ModelID = modelID
	}
}

func (a *BedrockAgent) Invoke(ctx context.Context, query, sessionID string) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(a.ModelID),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{
				Value: a.Instruction,
			},
		},
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{
						Value: buildPrompt(query),
					},
				},
			},
		},
	}

	output, err := a.client.Converse(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to converse with Bedrock: %w", err)
	}

	result, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("unexpected output type from Bedrock")
	}

	var content string
	for _, block := range result.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			content += text.Value
		}
	}
	if content == "" {
		return "", errors.New("no text content returned from Bedrock")
	}
	return content, nil
}

func (a *BedrockAgent) Stream(ctx context.Context, query, sessionID string) (<-chan copilot.StreamChunk, error) {
	return streamViaInvoke(a.Logger, func() (string, error) {
		return a.Invoke(ctx, query, sessionID)
	}), nil
}

func (a *BedrockAgent) SupportedContentTypes() []string {
	return supportedContentTypes
}
