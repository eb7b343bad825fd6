package copilot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Songmu/flextime"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/transport"
)

// ErrTaskTerminal is returned by the engine's store commit path when a task
// has already reached a terminal state. Terminal tasks accept no further
// status or artifact mutation.
var ErrTaskTerminal = errors.New("task is in terminal state")

// streamBufferSize is the per-subscriber event buffer. A slow consumer
// back-pressures only its own task's stream.
const streamBufferSize = 32

// TaskManager is the task lifecycle engine. It owns the task state machine,
// validates inbound requests, mediates between the transport layer and the
// worker Agent, and fans streamed events out to subscribers.
//
// All fields are set before first use; the zero Logger falls back to
// slog.Default.
type TaskManager struct {
	Store        TaskStore
	Agent        Agent
	Logger       *slog.Logger
	PushNotifier PushNotifier
	IDGenerator  IDGenerator

	// commitMu serializes status transitions so that a terminal state,
	// once committed, is never overwritten by an in-flight stream.
	commitMu sync.Mutex

	streamsMu sync.Mutex
	streams   map[string]*taskStream
}

var _ transport.TaskService = (*TaskManager)(nil)

// NewTaskManager creates a TaskManager with the given store and agent.
func NewTaskManager(store TaskStore, agent Agent, optFns ...func(*TaskManager)) *TaskManager {
	m := &TaskManager{
		Store: store,
		Agent: agent,
	}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

func (m *TaskManager) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

func (m *TaskManager) idGenerator() IDGenerator {
	if m.IDGenerator != nil {
		return m.IDGenerator
	}
	return &DefaultIDGenerator{}
}

// SupportedOutputModes returns the worker's declared content types.
func (m *TaskManager) SupportedOutputModes() []string {
	return m.Agent.SupportedContentTypes()
}

// OnSendTask handles tasks/send: validate, upsert, run the worker to
// completion, persist the result and return the final snapshot.
func (m *TaskManager) OnSendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	query, err := m.validateSendParams(&params)
	if err != nil {
		return nil, err
	}

	task, err := m.Store.Upsert(ctx, params.ID, params.SessionID, params.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert task: %w", err)
	}

	if err := m.registerPushNotification(ctx, params); err != nil {
		return nil, err
	}

	if _, err := m.commit(ctx, task.ID, workingStatus(nil), nil); err != nil {
		return nil, err
	}

	result, err := m.Agent.Invoke(ctx, query, params.SessionID)
	if err != nil {
		// The task stays at its last committed state so the caller can
		// retry with the same id.
		m.logger().ErrorContext(ctx, "agent invocation failed", "taskId", params.ID, "error", err)
		return nil, a2a.NewJSONRPCInternalError("agent invocation failed", nil)
	}

	artifact := resultArtifact(result)
	updated, err := m.commit(ctx, task.ID, terminalStatus(a2a.TaskStateCompleted), []a2a.Artifact{artifact})
	if err != nil {
		return nil, err
	}

	m.notifyPush(ctx, task.ID, a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
		ID:     task.ID,
		Status: updated.Status,
		Final:  true,
	}})
	return updated, nil
}

// OnSendTaskSubscribe handles tasks/sendSubscribe: validate, upsert, then
// run the worker's stream in a goroutine, emitting ordered events on the
// returned channel. The channel closes after the final event.
func (m *TaskManager) OnSendTaskSubscribe(ctx context.Context, params a2a.TaskSendParams) (<-chan a2a.TaskEvent, error) {
	query, err := m.validateSendParams(&params)
	if err != nil {
		return nil, err
	}

	task, err := m.Store.Upsert(ctx, params.ID, params.SessionID, params.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert task: %w", err)
	}

	if err := m.registerPushNotification(ctx, params); err != nil {
		return nil, err
	}

	ch := m.subscribe(task.ID)
	go m.runStream(ctx, task.ID, query, params.SessionID)
	return ch, nil
}

// OnGetTask handles tasks/get.
func (m *TaskManager) OnGetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	if params.ID == "" {
		return nil, a2a.NewJSONRPCInvalidParamsError("id is required")
	}
	task, err := m.Store.Get(ctx, params.ID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, a2a.NewJSONRPCTaskNotFoundError(params.ID)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// OnCancelTask handles tasks/cancel. Only non-terminal tasks can be
// canceled; the transition is committed before subscribers observe it.
func (m *TaskManager) OnCancelTask(ctx context.Context, params a2a.TaskIDParams) (*a2a.Task, error) {
	if params.ID == "" {
		return nil, a2a.NewJSONRPCInvalidParamsError("id is required")
	}

	task, err := m.commit(ctx, params.ID, terminalStatus(a2a.TaskStateCanceled), nil)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, a2a.NewJSONRPCTaskNotFoundError(params.ID)
		}
		if errors.Is(err, ErrTaskTerminal) {
			return nil, a2a.NewJSONRPCError(a2a.ErrorCodeTaskNotCancelable, map[string]string{"taskId": params.ID})
		}
		return nil, err
	}

	event := a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
		ID:     task.ID,
		Status: task.Status,
		Final:  true,
	}}
	m.publish(task.ID, event)
	m.notifyPush(ctx, task.ID, event)
	return task, nil
}

// OnSetTaskPushNotification handles tasks/pushNotification/set.
func (m *TaskManager) OnSetTaskPushNotification(ctx context.Context, config a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error) {
	if config.ID == "" {
		return nil, a2a.NewJSONRPCInvalidParamsError("id is required")
	}
	if err := config.PushNotificationConfig.Validate(); err != nil {
		return nil, a2a.NewJSONRPCInvalidParamsError(err.Error())
	}
	if m.PushNotifier == nil {
		return nil, a2a.NewJSONRPCError(a2a.ErrorCodePushNotificationNotSupported, nil)
	}
	if err := m.PushNotifier.ValidateEndpoint(ctx, config.PushNotificationConfig); err != nil {
		return nil, a2a.NewJSONRPCInvalidParamsError(fmt.Sprintf("push notification endpoint validation failed: %v", err))
	}
	if err := m.Store.SetPushNotification(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to store push notification config: %w", err)
	}
	return &config, nil
}

// OnGetTaskPushNotification handles tasks/pushNotification/get.
func (m *TaskManager) OnGetTaskPushNotification(ctx context.Context, params a2a.TaskIDParams) (*a2a.TaskPushNotificationConfig, error) {
	if params.ID == "" {
		return nil, a2a.NewJSONRPCInvalidParamsError("id is required")
	}
	config, err := m.Store.GetPushNotification(ctx, params.ID)
	if err != nil {
		if errors.Is(err, ErrPushNotificationConfigNotFound) {
			return nil, a2a.NewJSONRPCInternalError(fmt.Sprintf("no push notification config for task %s", params.ID), nil)
		}
		return nil, fmt.Errorf("failed to get push notification config: %w", err)
	}
	return config, nil
}

// OnResubscribe handles tasks/resubscribe: re-attach to an in-flight task's
// remaining events. A terminal task yields its final status immediately.
func (m *TaskManager) OnResubscribe(ctx context.Context, params a2a.TaskQueryParams) (<-chan a2a.TaskEvent, error) {
	if params.ID == "" {
		return nil, a2a.NewJSONRPCInvalidParamsError("id is required")
	}
	task, err := m.Store.Get(ctx, params.ID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, a2a.NewJSONRPCTaskNotFoundError(params.ID)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if !task.Status.State.IsTerminal() {
		if ch := m.attach(task.ID); ch != nil {
			return ch, nil
		}
		// No live producer for this task (e.g. the process restarted
		// mid-stream). There is nothing left to follow; report the
		// current status as the stream's end.
	}

	ch := make(chan a2a.TaskEvent, 1)
	ch <- a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
		ID:     task.ID,
		Status: task.Status,
		Final:  true,
	}}
	close(ch)
	return ch, nil
}

// validateSendParams applies the uniform validate-then-upsert policy: no
// store mutation happens until the request has passed all checks. Returns
// the extracted user query text.
func (m *TaskManager) validateSendParams(params *a2a.TaskSendParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", a2a.NewJSONRPCInvalidParamsError(err.Error())
	}
	if params.SessionID == "" {
		params.SessionID = m.idGenerator().GenerateSessionID()
	}
	if _, jsonrpcErr := transport.FindCompatibleOutputModes(params.AcceptedOutputModes, m.Agent.SupportedContentTypes()); jsonrpcErr != nil {
		return "", jsonrpcErr
	}
	query := params.Message.UserText()
	if query == "" {
		return "", a2a.NewJSONRPCInvalidParamsError("message must contain at least one text part")
	}
	return query, nil
}

func (m *TaskManager) registerPushNotification(ctx context.Context, params a2a.TaskSendParams) error {
	if params.PushNotification == nil {
		return nil
	}
	_, err := m.OnSetTaskPushNotification(ctx, a2a.TaskPushNotificationConfig{
		ID:                     params.ID,
		PushNotificationConfig: *params.PushNotification,
	})
	return err
}

// runStream consumes the worker's chunk stream and turns it into the ordered
// event sequence: WORKING updates, then on completion the terminal status,
// the artifact, and the closing final status. Store commits happen before
// the corresponding event is published.
func (m *TaskManager) runStream(ctx context.Context, taskID, query, sessionID string) {
	defer m.closeStream(taskID)

	chunks, err := m.Agent.Stream(ctx, query, sessionID)
	if err != nil {
		m.logger().ErrorContext(ctx, "agent stream failed to start", "taskId", taskID, "error", err)
		m.failStream(ctx, taskID)
		return
	}

	for chunk := range chunks {
		if ctx.Err() != nil {
			return
		}

		if !chunk.IsComplete {
			status := workingStatus(&a2a.Message{
				Role:  a2a.RoleAgent,
				Parts: []a2a.Part{a2a.NewTextPart(chunk.Updates)},
			})
			updated, err := m.commit(ctx, taskID, status, nil)
			if err != nil {
				m.endStreamOnCommitError(ctx, taskID, err)
				return
			}
			event := a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
				ID:     taskID,
				Status: updated.Status,
				Final:  false,
			}}
			m.publish(taskID, event)
			m.notifyPush(ctx, taskID, event)
			continue
		}

		artifact := resultArtifact(chunk.Content)
		updated, err := m.commit(ctx, taskID, terminalStatus(a2a.TaskStateCompleted), []a2a.Artifact{artifact})
		if err != nil {
			m.endStreamOnCommitError(ctx, taskID, err)
			return
		}

		statusEvent := a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
			ID:     taskID,
			Status: updated.Status,
			Final:  false,
		}}
		m.publish(taskID, statusEvent)
		m.notifyPush(ctx, taskID, statusEvent)

		artifactEvent := a2a.TaskEvent{Artifact: &a2a.TaskArtifactUpdateEvent{
			ID:       taskID,
			Artifact: artifact,
		}}
		m.publish(taskID, artifactEvent)
		m.notifyPush(ctx, taskID, artifactEvent)

		finalEvent := a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
			ID:     taskID,
			Status: a2a.TaskStatus{State: updated.Status.State},
			Final:  true,
		}}
		m.publish(taskID, finalEvent)
		m.notifyPush(ctx, taskID, finalEvent)
		return
	}

	// The worker closed its stream without a completing chunk; treat it
	// like a mid-stream failure so consumers are not left hanging.
	if ctx.Err() == nil {
		m.logger().WarnContext(ctx, "agent stream ended without completion", "taskId", taskID)
		m.failStream(ctx, taskID)
	}
}

// failStream commits a terminal FAILED status and emits the single terminal
// event. Already-committed artifacts are retained.
func (m *TaskManager) failStream(ctx context.Context, taskID string) {
	updated, err := m.commit(ctx, taskID, terminalStatus(a2a.TaskStateFailed), nil)
	if err != nil {
		m.endStreamOnCommitError(ctx, taskID, err)
		return
	}
	event := a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
		ID:     taskID,
		Status: updated.Status,
		Final:  true,
	}}
	m.publish(taskID, event)
	m.notifyPush(ctx, taskID, event)
}

// endStreamOnCommitError handles a failed store commit inside a stream. A
// terminal-state conflict means another path (typically cancel) already
// closed the task; its status becomes this stream's final event.
func (m *TaskManager) endStreamOnCommitError(ctx context.Context, taskID string, commitErr error) {
	if !errors.Is(commitErr, ErrTaskTerminal) {
		m.logger().ErrorContext(ctx, "failed to commit task update", "taskId", taskID, "error", commitErr)
		return
	}
	task, err := m.Store.Get(ctx, taskID)
	if err != nil {
		m.logger().ErrorContext(ctx, "failed to load terminal task", "taskId", taskID, "error", err)
		return
	}
	m.publish(taskID, a2a.TaskEvent{Status: &a2a.TaskStatusUpdateEvent{
		ID:     taskID,
		Status: a2a.TaskStatus{State: task.Status.State},
		Final:  true,
	}})
}

// commit is the single store mutation path of the engine. It enforces the
// state machine: once a task is terminal, no further transition is accepted.
func (m *TaskManager) commit(ctx context.Context, taskID string, status a2a.TaskStatus, artifacts []a2a.Artifact) (*a2a.Task, error) {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	current, err := m.Store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if current.Status.State.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrTaskTerminal, taskID, current.Status.State)
	}

	updated, err := m.Store.Update(ctx, taskID, status, artifacts)
	if err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return updated, nil
}

func (m *TaskManager) notifyPush(ctx context.Context, taskID string, event a2a.TaskEvent) {
	if m.PushNotifier == nil {
		return
	}
	config, err := m.Store.GetPushNotification(ctx, taskID)
	if err != nil {
		if !errors.Is(err, ErrPushNotificationConfigNotFound) {
			m.logger().WarnContext(ctx, "failed to load push notification config", "taskId", taskID, "error", err)
		}
		return
	}
	if err := m.PushNotifier.Notify(ctx, config.PushNotificationConfig, event); err != nil {
		m.logger().WarnContext(ctx, "push notification delivery failed", "taskId", taskID, "error", err)
	}
}

// subscribe registers a new subscriber channel for the task, creating the
// stream if needed.
func (m *TaskManager) subscribe(taskID string) <-chan a2a.TaskEvent {
	m.streamsMu.Lock()
	defer m.streamsMu.Unlock()

	if m.streams == nil {
		m.streams = make(map[string]*taskStream)
	}
	stream, ok := m.streams[taskID]
	if !ok {
		stream = &taskStream{}
		m.streams[taskID] = stream
	}
	return stream.add()
}

// attach returns a subscriber channel for an in-flight stream, or nil when
// no stream is live for the task.
func (m *TaskManager) attach(taskID string) <-chan a2a.TaskEvent {
	m.streamsMu.Lock()
	defer m.streamsMu.Unlock()

	stream, ok := m.streams[taskID]
	if !ok || stream.closed() {
		return nil
	}
	return stream.add()
}

// publish delivers one event to every live subscriber of the task, in the
// order events were committed.
func (m *TaskManager) publish(taskID string, event a2a.TaskEvent) {
	m.streamsMu.Lock()
	stream, ok := m.streams[taskID]
	m.streamsMu.Unlock()
	if !ok {
		return
	}
	stream.send(event)
	if event.IsFinal() {
		m.closeStream(taskID)
	}
}

func (m *TaskManager) closeStream(taskID string) {
	m.streamsMu.Lock()
	stream, ok := m.streams[taskID]
	if ok {
		delete(m.streams, taskID)
	}
	m.streamsMu.Unlock()
	if ok {
		stream.close()
	}
}

// taskStream fans committed events out to the subscribers of one task.
type taskStream struct {
	mu   sync.Mutex
	subs []chan a2a.TaskEvent
	done bool
}

func (s *taskStream) add() <-chan a2a.TaskEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan a2a.TaskEvent, streamBufferSize)
	if s.done {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

func (s *taskStream) send(event a2a.TaskEvent) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	subs := make([]chan a2a.TaskEvent, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		ch <- event
	}
}

func (s *taskStream) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.done = true
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

func (s *taskStream) closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func workingStatus(message *a2a.Message) a2a.TaskStatus {
	status := a2a.TaskStatus{
		State:   a2a.TaskStateWorking,
		Message: message,
	}
	status.SetTimestamp(flextime.Now())
	return status
}

func terminalStatus(state a2a.TaskState) a2a.TaskStatus {
	status := a2a.TaskStatus{State: state}
	status.SetTimestamp(flextime.Now())
	return status
}

// resultArtifact wraps a worker result as a single artifact: JSON objects
// become a data part, anything else a text part.
func resultArtifact(result string) a2a.Artifact {
	trimmed := strings.TrimSpace(result)
	if strings.HasPrefix(trimmed, "{") {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &data); err == nil {
			return a2a.Artifact{Parts: []a2a.Part{a2a.NewDataPart(data)}}
		}
	}
	return a2a.Artifact{Parts: []a2a.Part{a2a.NewTextPart(result)}}
}
