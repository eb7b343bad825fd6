package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatCompleter struct {
	lastParams openai.ChatCompletionNewParams
	response   *openai.ChatCompletion
	err        error
}

func (f *fakeChatCompleter) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.lastParams = params
	return f.response, f.err
}

func TestOpenAIAgent_Invoke(t *testing.T) {
	fake := &fakeChatCompleter{
		response: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "Here is your daily plan."}},
			},
		},
	}
	agent, err := NewOpenAIAgent(WithChatCompleter(fake))
	require.NoError(t, err)

	result, err := agent.Invoke(context.Background(), "plan my job search", "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Here is your daily plan.", result)
	assert.Equal(t, DefaultOpenAIModel, fake.lastParams.Model)
	require.Len(t, fake.lastParams.Messages, 2)
}

func TestOpenAIAgent_Invoke_NoChoices(t *testing.T) {
	fake := &fakeChatCompleter{response: &openai.ChatCompletion{}}
	agent, err := NewOpenAIAgent(WithChatCompleter(fake))
	require.NoError(t, err)

	_, err = agent.Invoke(context.Background(), "plan my job search", "session-1")
	assert.Error(t, err)
}

func TestOpenAIAgent_Stream(t *testing.T) {
	fake := &fakeChatCompleter{
		response: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "final answer"}},
			},
		},
	}
	agent, err := NewOpenAIAgent(WithChatCompleter(fake))
	require.NoError(t, err)

	ch, err := agent.Stream(context.Background(), "plan my job search", "session-1")
	require.NoError(t, err)

	var chunks []copilot.StreamChunk
	for chunk := range ch {
		chunks = append(chunks, chunk)
	}
	require.Len(t, chunks, 2)
	assert.False(t, chunks[0].IsComplete)
	assert.NotEmpty(t, chunks[0].Updates)
	assert.True(t, chunks[1].IsComplete)
	assert.Equal(t, "final answer", chunks[1].Content)
}

func TestOpenAIAgent_Stream_Failure(t *testing.T) {
	fake := &fakeChatCompleter{err: errors.New("rate limited")}
	agent, err := NewOpenAIAgent(WithChatCompleter(fake))
	require.NoError(t, err)

	ch, err := agent.Stream(context.Background(), "plan my job search", "session-1")
	require.NoError(t, err)

	var chunks []copilot.StreamChunk
	for chunk := range ch {
		chunks = append(chunks, chunk)
	}
	// Only the progress update; the stream ends without a complete chunk.
	require.Len(t, chunks, 1)
	assert.False(t, chunks[0].IsComplete)
}

func TestOpenAIAgent_SupportedContentTypes(t *testing.T) {
	agent, err := NewOpenAIAgent(WithChatCompleter(&fakeChatCompleter{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "text/plain"}, agent.SupportedContentTypes())
}

type fakeBedrockClient struct {
	lastInput *bedrockruntime.ConverseInput
	output    *bedrockruntime.ConverseOutput
	err       error
}

func (f *fakeBedrockClient) Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.lastInput = params
	return f.output, f.err
}

func TestBedrockAgent_Invoke(t *testing.T) {
	fake := &fakeBedrockClient{
		output: &bedrockruntime.ConverseOutput{
			Output: &types.ConverseOutputMemberMessage{
				Value: types.Message{
					Role: types.ConversationRoleAssistant,
					Content: []types.ContentBlock{
						&types.ContentBlockMemberText{Value: "Here is your daily plan."},
					},
				},
			},
		},
	}
	agent, err := NewBedrockAgent(context.Background(), WithBedrockClient(fake))
	require.NoError(t, err)

	result, err := agent.Invoke(context.Background(), "plan my job search", "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Here is your daily plan.", result)
	assert.Equal(t, DefaultBedrockModel, aws.ToString(fake.lastInput.ModelId))
	require.Len(t, fake.lastInput.Messages, 1)
}

func TestBedrockAgent_Invoke_Error(t *testing.T) {
	fake := &fakeBedrockClient{err: errors.New("throttled")}
	agent, err := NewBedrockAgent(context.Background(), WithBedrockClient(fake))
	require.NoError(t, err)

	_, err = agent.Invoke(context.Background(), "plan my job search", "session-1")
	assert.Error(t, err)
}

func TestBedrockAgent_Stream(t *testing.T) {
	fake := &fakeBedrockClient{
		output: &bedrockruntime.ConverseOutput{
			Output: &types.ConverseOutputMemberMessage{
				Value: types.Message{
					Content: []types.ContentBlock{
						&types.ContentBlockMemberText{Value: "final answer"},
					},
				},
			},
		},
	}
	agent, err := NewBedrockAgent(context.Background(), WithBedrockClient(fake))
	require.NoError(t, err)

	ch, err := agent.Stream(context.Background(), "plan my job search", "session-1")
	require.NoError(t, err)

	var chunks []copilot.StreamChunk
	for chunk := range ch {
		chunks = append(chunks, chunk)
	}
	require.Len(t, chunks, 2)
	assert.True(t, chunks[1].IsComplete)
	assert.Equal(t, "final answer", chunks[1].Content)
}
