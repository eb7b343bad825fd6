// Package transport terminates the A2A wire protocol: JSON-RPC 2.0 over
// HTTP POST, SSE streaming for subscribe/resubscribe, the well-known agent
// card endpoint, and the cross-cutting request policies applied before
// dispatch.
package transport

import (
	"context"

	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// PlaceholderURL is used as a default URL for AgentCard when the actual URL is managed by transport layer
const PlaceholderURL = "http://0.0.0.0"

//go:generate go tool mockgen -source=task_service.go -destination=./task_service_mock_test.go -package transport

// TaskService is the lifecycle-engine contract the Handler dispatches to.
// Implementations return *a2a.JSONRPCError for protocol-classified failures;
// any other error is rendered as an internal error.
type TaskService interface {
	// OnSendTask runs a task to completion and returns the final snapshot.
	OnSendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error)

	// OnSendTaskSubscribe starts a task and returns its ordered event
	// stream. The channel closes after the final event.
	OnSendTaskSubscribe(ctx context.Context, params a2a.TaskSendParams) (<-chan a2a.TaskEvent, error)

	// OnGetTask returns the current snapshot of a task.
	OnGetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error)

	// OnCancelTask transitions a non-terminal task to canceled.
	OnCancelTask(ctx context.Context, params a2a.TaskIDParams) (*a2a.Task, error)

	// OnSetTaskPushNotification associates a push notification target with a task.
	OnSetTaskPushNotification(ctx context.Context, config a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error)

	// OnGetTaskPushNotification returns the push notification target of a task.
	OnGetTaskPushNotification(ctx context.Context, params a2a.TaskIDParams) (*a2a.TaskPushNotificationConfig, error)

	// OnResubscribe re-attaches a consumer to an in-flight task's remaining
	// events. A terminal task yields one final status event.
	OnResubscribe(ctx context.Context, params a2a.TaskQueryParams) (<-chan a2a.TaskEvent, error)

	// SupportedOutputModes returns the output modes the worker can produce.
	SupportedOutputModes() []string
}
