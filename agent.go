// Package copilot provides the task-lifecycle engine and server runtime for
// the career copilot's A2A agents. Each deployable agent wires a worker
// implementation of the Agent interface into a Server; the engine owns task
// state, the store owns persistence, and the transport package owns the wire.
package copilot

import (
	"context"
)

//go:generate go tool mockgen -source=agent.go -destination=mock_test.go -package=copilot
//go:generate go tool mockgen -source=store.go -destination=mock_store_test.go -package=copilot
//go:generate go tool mockgen -source=push_notifier.go -destination=mock_push_notifier_test.go -package=copilot

// Agent is the worker collaborator behind a deployment. Implementations hold
// the domain logic (LLM prompting, retrieval, rules); the engine only sees
// this surface.
type Agent interface {
	// Invoke runs the query to completion and returns the full result,
	// often a JSON-encoded document.
	Invoke(ctx context.Context, query, sessionID string) (string, error)

	// Stream runs the query and emits progress chunks until a chunk with
	// IsComplete is sent, after which the channel is closed. The returned
	// channel is owned by the implementation; canceling ctx stops it.
	Stream(ctx context.Context, query, sessionID string) (<-chan StreamChunk, error)

	// SupportedContentTypes declares the output modes this worker can
	// produce, e.g. "text" or "application/json".
	SupportedContentTypes() []string
}

// StreamChunk is one element of a worker's progress stream. Intermediate
// chunks carry Updates (progress text); the last chunk has IsComplete set and
// carries the final Content.
type StreamChunk struct {
	IsComplete bool
	Content    string
	Updates    string
}
