// Package copilottest provides testing utilities for career copilot A2A
// agents. It offers httptest-like functionality specifically for A2A
// protocol testing.
package copilottest

import (
	"context"
	"sync"

	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
)

// ScriptedAgent is a worker with predetermined responses, useful for
// exercising the engine and transport without an LLM behind them.
type ScriptedAgent struct {
	// Result is returned by Invoke when InvokeFunc is nil.
	Result string

	// Err is returned by Invoke and Stream when set.
	Err error

	// Chunks is emitted by Stream when StreamFunc is nil. When empty, a
	// single complete chunk carrying Result is emitted.
	Chunks []copilot.StreamChunk

	// ContentTypes overrides the default supported content types.
	ContentTypes []string

	// InvokeFunc and StreamFunc take precedence over the fields above.
	InvokeFunc func(ctx context.Context, query, sessionID string) (string, error)
	StreamFunc func(ctx context.Context, query, sessionID string) (<-chan copilot.StreamChunk, error)

	mu      sync.Mutex
	queries []string
}

var _ copilot.Agent = (*ScriptedAgent)(nil)

// NewScriptedAgent creates an agent that answers every query with result.
func NewScriptedAgent(result string) *ScriptedAgent {
	return &ScriptedAgent{Result: result}
}

func (a *ScriptedAgent) Invoke(ctx context.Context, query, sessionID string) (string, error) {
	a.recordQuery(query)
	if a.InvokeFunc != nil {
		return a.InvokeFunc(ctx, query, sessionID)
	}
	if a.Err != nil {
		return "", a.Err
	}
	return a.Result, nil
}

func (a *ScriptedAgent) Stream(ctx context.Context, query, sessionID string) (<-chan copilot.StreamChunk, error) {
	a.recordQuery(query)
	if a.StreamFunc != nil {
		return a.StreamFunc(ctx, query, sessionID)
	}
	if a.Err != nil {
		return nil, a.Err
	}

	chunks := a.Chunks
	if len(chunks) == 0 {
		chunks = []copilot.StreamChunk{{IsComplete: true, Content: a.Result}}
	}

	ch := make(chan copilot.StreamChunk, len(chunks))
	go func() {
		defer close(ch)
		for _, chunk := range chunks {
			select {
			case ch <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (a *ScriptedAgent) SupportedContentTypes() []string {
	if len(a.ContentTypes) > 0 {
		return a.ContentTypes
	}
	return []string{"text", "text/plain"}
}

// Queries returns the queries received so far, in order.
func (a *ScriptedAgent) Queries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.queries))
	copy(out, a.queries)
	return out
}

func (a *ScriptedAgent) recordQuery(query string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, query)
}
