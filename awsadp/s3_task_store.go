package awsadp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Songmu/flextime"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// S3TaskStore implements the TaskStore interface using AWS S3.
// Mutations are serialized per process; cross-process writers need
// external coordination.
type S3TaskStore struct {
	client *s3.Client
	bucket string
	prefix string // Object key prefix for namespacing (useful for testing)
	mu     sync.Mutex
}

var _ copilot.TaskStore = (*S3TaskStore)(nil)

// S3TaskStoreConfig provides configuration for S3TaskStore
type S3TaskStoreConfig struct {
	Client *s3.Client
	Bucket string
	Prefix string // Optional prefix for all object keys (useful for testing isolation)
}

// NewS3TaskStore creates a new S3TaskStore instance
func NewS3TaskStore(config S3TaskStoreConfig) *S3TaskStore {
	return &S3TaskStore{
		client: config.Client,
		bucket: config.Bucket,
		prefix: config.Prefix,
	}
}

func (s *S3TaskStore) Upsert(ctx context.Context, id, sessionID string, message a2a.Message) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, err := s.readTask(ctx, id); err == nil {
		return task, nil
	} else if err != copilot.ErrTaskNotFound {
		return nil, err
	}

	task := a2a.NewTask(id, sessionID, a2a.TaskStateSubmitted)
	task.Status.Message = &message
	task.Status.SetTimestamp(flextime.Now())
	if err := s.writeTask(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *S3TaskStore) Get(ctx context.Context, id string) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readTask(ctx, id)
}

func (s *S3TaskStore) Update(ctx context.Context, id string, status a2a.TaskStatus, artifacts []a2a.Artifact) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.readTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.Artifacts = append(task.Artifacts, artifacts...)
	if err := s.writeTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *S3TaskStore) SetPushNotification(ctx context.Context, config a2a.TaskPushNotificationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := copilot.PushNotificationConfigDocument{
		Type:   copilot.DocTypePushNotificationConfig,
		Config: &config,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal push notification config: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.getPushNotificationConfigKey(config.ID)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put push notification config to S3: %w", err)
	}
	return nil
}

func (s *S3TaskStore) GetPushNotification(ctx context.Context, id string) (*a2a.TaskPushNotificationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.getPushNotificationConfigKey(id)),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") {
			return nil, copilot.ErrPushNotificationConfigNotFound
		}
		return nil, fmt.Errorf("failed to get push notification config from S3: %w", err)
	}
	defer result.Body.Close()

	var doc copilot.PushNotificationConfigDocument
	if err := json.NewDecoder(result.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode push notification config: %w", err)
	}
	return doc.Config, nil
}

func (s *S3TaskStore) readTask(ctx context.Context, id string) (*a2a.Task, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.getTaskKey(id)),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") {
			return nil, copilot.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task from S3: %w", err)
	}
	defer result.Body.Close()

	var doc copilot.TaskDocument
	if err := json.NewDecoder(result.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return doc.Task, nil
}

func (s *S3TaskStore) writeTask(ctx context.Context, task *a2a.Task) error {
	doc := copilot.TaskDocument{
		Type: copilot.DocTypeTask,
		Task: task,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.getTaskKey(task.ID)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put task to S3: %w", err)
	}
	return nil
}

func (s *S3TaskStore) getTaskKey(taskID string) string {
	return s.prefix + "tasks/" + taskID + ".json"
}

func (s *S3TaskStore) getPushNotificationConfigKey(taskID string) string {
	return s.prefix + "push_notifications/" + taskID + ".json"
}
