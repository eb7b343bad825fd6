package copilot

import (
	"context"
	"errors"
	"sync"

	"github.com/Songmu/flextime"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// Storage errors
var (
	// ErrTaskNotFound is returned when a task is not found in the store.
	// On Update it signals a contract violation by the caller and is never
	// swallowed by the engine.
	ErrTaskNotFound = errors.New("task not found")
	// ErrPushNotificationConfigNotFound is returned when no push
	// notification config is registered for a task.
	ErrPushNotificationConfigNotFound = errors.New("push notification config not found")
)

// TaskStore is the persistence contract for task records. Implementations
// must serialize all mutating operations; one mutual-exclusion region per
// store instance is sufficient.
type TaskStore interface {
	// Upsert creates the task in SUBMITTED state if absent, otherwise
	// returns the existing record unchanged. Idempotent on id.
	Upsert(ctx context.Context, id, sessionID string, message a2a.Message) (*a2a.Task, error)

	// Get returns a snapshot of the task, or ErrTaskNotFound.
	Get(ctx context.Context, id string) (*a2a.Task, error)

	// Update atomically replaces the task's status and appends artifacts,
	// returning the updated snapshot. Returns ErrTaskNotFound if the id is
	// absent.
	Update(ctx context.Context, id string, status a2a.TaskStatus, artifacts []a2a.Artifact) (*a2a.Task, error)

	// SetPushNotification associates a push notification config with a task id.
	SetPushNotification(ctx context.Context, config a2a.TaskPushNotificationConfig) error

	// GetPushNotification returns the push notification config for a task id,
	// or ErrPushNotificationConfigNotFound.
	GetPushNotification(ctx context.Context, id string) (*a2a.TaskPushNotificationConfig, error)
}

// InMemoryTaskStore is a process-local TaskStore guarded by a single mutex.
type InMemoryTaskStore struct {
	mu          sync.Mutex
	tasks       map[string]*a2a.Task
	pushConfigs map[string]*a2a.TaskPushNotificationConfig
}

// NewInMemoryTaskStore creates an empty in-memory task store.
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks:       make(map[string]*a2a.Task),
		pushConfigs: make(map[string]*a2a.TaskPushNotificationConfig),
	}
}

func (s *InMemoryTaskStore) Upsert(ctx context.Context, id, sessionID string, message a2a.Message) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, ok := s.tasks[id]; ok {
		return cloneTask(task), nil
	}

	task := a2a.NewTask(id, sessionID, a2a.TaskStateSubmitted)
	task.Status.Message = &message
	task.Status.SetTimestamp(flextime.Now())
	s.tasks[id] = &task
	return cloneTask(&task), nil
}

func (s *InMemoryTaskStore) Get(ctx context.Context, id string) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (s *InMemoryTaskStore) Update(ctx context.Context, id string, status a2a.TaskStatus, artifacts []a2a.Artifact) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	task.Status = status
	task.Artifacts = append(task.Artifacts, artifacts...)
	return cloneTask(task), nil
}

func (s *InMemoryTaskStore) SetPushNotification(ctx context.Context, config a2a.TaskPushNotificationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pushConfigs[config.ID] = &config
	return nil
}

func (s *InMemoryTaskStore) GetPushNotification(ctx context.Context, id string) (*a2a.TaskPushNotificationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config, ok := s.pushConfigs[id]
	if !ok {
		return nil, ErrPushNotificationConfigNotFound
	}
	cp := *config
	return &cp, nil
}

// cloneTask returns a snapshot safe to hand to callers while the stored
// record keeps mutating.
func cloneTask(t *a2a.Task) *a2a.Task {
	cp := *t
	if t.Artifacts != nil {
		cp.Artifacts = make([]a2a.Artifact, len(t.Artifacts))
		copy(cp.Artifacts, t.Artifacts)
	}
	return &cp
}
