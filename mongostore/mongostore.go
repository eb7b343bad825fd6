// Package mongostore provides a MongoDB-backed TaskStore for multi-process
// deployments. All record kinds share one collection, discriminated by the
// "_type" field.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Songmu/flextime"
	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	// DefaultDatabase is the database used when none is configured.
	DefaultDatabase = "career_copilot"
	// DefaultCollection is the collection used when none is configured.
	DefaultCollection = "a2a_records"
)

// taskDocument is the persisted shape of a task record. The _id combines the
// discriminator with the task id so tasks and push configs can share a
// collection without key collisions.
type taskDocument struct {
	DocID string    `bson:"_id"`
	Type  string    `bson:"_type"`
	Task  *a2a.Task `bson:"task"`
}

type pushConfigDocument struct {
	DocID  string                          `bson:"_id"`
	Type   string                          `bson:"_type"`
	Config *a2a.TaskPushNotificationConfig `bson:"config"`
}

// TaskStore implements copilot.TaskStore on a MongoDB collection.
type TaskStore struct {
	client     *mongo.Client
	Database   string
	Collection string
}

var _ copilot.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore using the given client.
func NewTaskStore(client *mongo.Client, optFns ...func(*TaskStore)) *TaskStore {
	s := &TaskStore{
		client:     client,
		Database:   DefaultDatabase,
		Collection: DefaultCollection,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// WithDatabase overrides the database name.
func WithDatabase(name string) func(*TaskStore) {
	return func(s *TaskStore) {
		s.Database = name
	}
}

// WithCollection overrides the collection name.
func WithCollection(name string) func(*TaskStore) {
	return func(s *TaskStore) {
		s.Collection = name
	}
}

// Connect dials MongoDB and returns a TaskStore over it. The caller owns the
// returned client and should Disconnect it on shutdown.
func Connect(ctx context.Context, uri string, optFns ...func(*TaskStore)) (*TaskStore, *mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return NewTaskStore(client, optFns...), client, nil
}

func (s *TaskStore) collection() *mongo.Collection {
	return s.client.Database(s.Database).Collection(s.Collection)
}

func taskDocID(id string) string {
	return copilot.DocTypeTask + ":" + id
}

func pushConfigDocID(id string) string {
	return copilot.DocTypePushNotificationConfig + ":" + id
}

func (s *TaskStore) Upsert(ctx context.Context, id, sessionID string, message a2a.Message) (*a2a.Task, error) {
	task := a2a.NewTask(id, sessionID, a2a.TaskStateSubmitted)
	task.Status.Message = &message
	task.Status.SetTimestamp(flextime.Now())

	doc := taskDocument{
		DocID: taskDocID(id),
		Type:  copilot.DocTypeTask,
		Task:  &task,
	}

	// $setOnInsert keeps the operation idempotent: an existing record is
	// returned unchanged.
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var result taskDocument
	err := s.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": doc.DocID, "_type": copilot.DocTypeTask},
		bson.M{"$setOnInsert": doc},
		opts,
	).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert task %s: %w", id, err)
	}
	return result.Task, nil
}

func (s *TaskStore) Get(ctx context.Context, id string) (*a2a.Task, error) {
	var doc taskDocument
	err := s.collection().FindOne(ctx,
		bson.M{"_id": taskDocID(id), "_type": copilot.DocTypeTask},
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, copilot.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return doc.Task, nil
}

func (s *TaskStore) Update(ctx context.Context, id string, status a2a.TaskStatus, artifacts []a2a.Artifact) (*a2a.Task, error) {
	update := bson.M{
		"$set": bson.M{"task.status": status},
	}
	if len(artifacts) > 0 {
		update["$push"] = bson.M{"task.artifacts": bson.M{"$each": artifacts}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err := s.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": taskDocID(id), "_type": copilot.DocTypeTask},
		update,
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, copilot.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return doc.Task, nil
}

func (s *TaskStore) SetPushNotification(ctx context.Context, config a2a.TaskPushNotificationConfig) error {
	doc := pushConfigDocument{
		DocID:  pushConfigDocID(config.ID),
		Type:   copilot.DocTypePushNotificationConfig,
		Config: &config,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection().ReplaceOne(ctx,
		bson.M{"_id": doc.DocID, "_type": copilot.DocTypePushNotificationConfig},
		doc,
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to save push notification config for task %s: %w", config.ID, err)
	}
	return nil
}

func (s *TaskStore) GetPushNotification(ctx context.Context, id string) (*a2a.TaskPushNotificationConfig, error) {
	var doc pushConfigDocument
	err := s.collection().FindOne(ctx,
		bson.M{"_id": pushConfigDocID(id), "_type": copilot.DocTypePushNotificationConfig},
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, copilot.ErrPushNotificationConfigNotFound
		}
		return nil, fmt.Errorf("failed to get push notification config for task %s: %w", id, err)
	}
	return doc.Config, nil
}
