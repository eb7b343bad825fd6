package copilot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/Songmu/flextime"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// Document type discriminators shared by all durable stores. Every persisted
// document carries a "_type" tag so multiple record kinds can live in one
// collection or prefix without confusion.
const (
	DocTypeTask                   = "task"
	DocTypePushNotificationConfig = "push_notification_config"
)

// TaskDocument is the persisted shape of a task record.
type TaskDocument struct {
	Type string    `json:"_type" bson:"_type"`
	Task *a2a.Task `json:"task" bson:"task"`
}

// PushNotificationConfigDocument is the persisted shape of a push
// notification config record.
type PushNotificationConfigDocument struct {
	Type   string                          `json:"_type" bson:"_type"`
	Config *a2a.TaskPushNotificationConfig `json:"config" bson:"config"`
}

// FileTaskStore implements TaskStore using JSON files, one document per
// record. Suitable for local development and single-process deployments.
type FileTaskStore struct {
	basePath string
	mu       sync.Mutex
}

// NewFileTaskStore creates a FileTaskStore rooted at basePath.
func NewFileTaskStore(basePath string) (*FileTaskStore, error) {
	for _, dir := range []string{"tasks", "push_notifications"} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0750); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &FileTaskStore{basePath: basePath}, nil
}

func (s *FileTaskStore) Upsert(ctx context.Context, id, sessionID string, message a2a.Message) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, err := s.readTask(id); err == nil {
		return task, nil
	} else if err != ErrTaskNotFound {
		return nil, err
	}

	task := a2a.NewTask(id, sessionID, a2a.TaskStateSubmitted)
	task.Status.Message = &message
	task.Status.SetTimestamp(flextime.Now())
	if err := s.writeTask(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *FileTaskStore) Get(ctx context.Context, id string) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readTask(id)
}

func (s *FileTaskStore) Update(ctx context.Context, id string, status a2a.TaskStatus, artifacts []a2a.Artifact) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.readTask(id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.Artifacts = append(task.Artifacts, artifacts...)
	if err := s.writeTask(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *FileTaskStore) SetPushNotification(ctx context.Context, config a2a.TaskPushNotificationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := PushNotificationConfigDocument{
		Type:   DocTypePushNotificationConfig,
		Config: &config,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal push notification config: %w", err)
	}
	if err := os.WriteFile(s.pushConfigPath(config.ID), data, 0600); err != nil {
		return fmt.Errorf("failed to write push notification config: %w", err)
	}
	return nil
}

func (s *FileTaskStore) GetPushNotification(ctx context.Context, id string) (*a2a.TaskPushNotificationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.pushConfigPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPushNotificationConfigNotFound
		}
		return nil, fmt.Errorf("failed to read push notification config: %w", err)
	}

	var doc PushNotificationConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push notification config: %w", err)
	}
	return doc.Config, nil
}

func (s *FileTaskStore) readTask(id string) (*a2a.Task, error) {
	data, err := os.ReadFile(s.taskPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var doc TaskDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return doc.Task, nil
}

func (s *FileTaskStore) writeTask(task *a2a.Task) error {
	doc := TaskDocument{
		Type: DocTypeTask,
		Task: task,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := os.WriteFile(s.taskPath(task.ID), data, 0600); err != nil {
		return fmt.Errorf("failed to write task file: %w", err)
	}
	return nil
}

func (s *FileTaskStore) taskPath(id string) string {
	return filepath.Join(s.basePath, "tasks", url.PathEscape(id)+".json")
}

func (s *FileTaskStore) pushConfigPath(id string) string {
	return filepath.Join(s.basePath, "push_notifications", url.PathEscape(id)+".json")
}
