package awsadp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// SQSPushNotifierConfig represents the configuration for SQSPushNotifier
type SQSPushNotifierConfig struct {
	Client    *sqs.Client
	QueueURL  string
	QueueName string       // For automatic resolution when QueueURL is not specified (Optional)
	Logger    *slog.Logger // Optional logger, defaults to slog.Default()
}

// SQSPushNotifier implements the PushNotifier interface using AWS SQS.
// Instead of calling webhooks directly, it enqueues delivery envelopes for
// out-of-band workers. Useful when webhook endpoints are slow or flaky and
// retries should not block task processing.
type SQSPushNotifier struct {
	client   *sqs.Client
	queueURL string
	logger   *slog.Logger
}

var _ copilot.PushNotifier = (*SQSPushNotifier)(nil)

// PushDeliveryEnvelope is the SQS message body: the webhook config plus the
// event to deliver.
type PushDeliveryEnvelope struct {
	Config a2a.PushNotificationConfig `json:"config"`
	Event  a2a.TaskEvent              `json:"event"`
}

// NewSQSPushNotifier creates a new SQS-based push notifier
func NewSQSPushNotifier(config SQSPushNotifierConfig) (*SQSPushNotifier, error) {
	if config.Client == nil {
		return nil, errors.New("SQS Client is required")
	}

	queueURL := config.QueueURL
	if queueURL == "" && config.QueueName == "" {
		return nil, errors.New("either QueueURL or QueueName must be specified")
	}

	// Get QueueURL using GetQueueUrl when QueueName is specified
	if queueURL == "" {
		result, err := config.Client.GetQueueUrl(context.Background(), &sqs.GetQueueUrlInput{
			QueueName: aws.String(config.QueueName),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get queue URL for %s: %w", config.QueueName, err)
		}
		queueURL = *result.QueueUrl
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SQSPushNotifier{
		client:   config.Client,
		queueURL: queueURL,
		logger:   logger,
	}, nil
}

// Notify enqueues a delivery envelope for the event
func (n *SQSPushNotifier) Notify(ctx context.Context, config a2a.PushNotificationConfig, event a2a.TaskEvent) error {
	envelope := PushDeliveryEnvelope{
		Config: config,
		Event:  event,
	}
	messageBody, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery envelope: %w", err)
	}

	_, err = n.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(n.queueURL),
		MessageBody: aws.String(string(messageBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	n.logger.Debug("Enqueued push notification", "url", config.URL)
	return nil
}

// ValidateEndpoint checks the webhook URL shape. Reachability is verified by
// the delivery worker, not at registration time.
func (n *SQSPushNotifier) ValidateEndpoint(ctx context.Context, config a2a.PushNotificationConfig) error {
	u, err := url.Parse(config.URL)
	if err != nil {
		return fmt.Errorf("invalid notification URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("notification URL must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("notification URL must have a host")
	}
	return nil
}

// Close gracefully shuts down the notifier
func (n *SQSPushNotifier) Close() error {
	// SQS doesn't require explicit closing
	return nil
}
