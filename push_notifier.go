package copilot

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Songmu/flextime"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// PushNotifier handles push notification delivery for task events
type PushNotifier interface {
	// Notify sends a push notification for the given event (at-least-once delivery)
	Notify(ctx context.Context, config a2a.PushNotificationConfig, event a2a.TaskEvent) error

	// ValidateEndpoint checks if the notification endpoint is valid and reachable
	ValidateEndpoint(ctx context.Context, config a2a.PushNotificationConfig) error

	// Close gracefully shuts down the notifier
	Close() error
}

// DefaultPushNotifier implements PushNotifier using a standard HTTP client.
// When JWTSecret is set, each delivery carries an HS256-signed Bearer token
// binding the payload hash, so receivers can verify origin and integrity.
type DefaultPushNotifier struct {
	Client    *http.Client
	JWTSecret []byte
}

// NewDefaultPushNotifier creates a new DefaultPushNotifier with default HTTP client
func NewDefaultPushNotifier(optFns ...func(*DefaultPushNotifier)) *DefaultPushNotifier {
	n := &DefaultPushNotifier{
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, fn := range optFns {
		fn(n)
	}
	return n
}

// WithJWTSecret enables signed deliveries with the given HS256 secret.
func WithJWTSecret(secret []byte) func(*DefaultPushNotifier) {
	return func(n *DefaultPushNotifier) {
		n.JWTSecret = secret
	}
}

// Notify sends HTTP POST request to the configured URL with the event data
func (n *DefaultPushNotifier) Notify(ctx context.Context, config a2a.PushNotificationConfig, event a2a.TaskEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	switch {
	case config.Authentication != nil && config.Authentication.Credentials != "":
		req.Header.Set("Authorization", "Bearer "+config.Authentication.Credentials)
	case len(n.JWTSecret) > 0:
		signed, err := n.signPayload(payload)
		if err != nil {
			return fmt.Errorf("failed to sign push notification: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+signed)
	}

	if config.Token != "" {
		req.Header.Set("X-A2A-Notification-Token", config.Token)
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &PushNotificationError{
			StatusCode: resp.StatusCode,
			URL:        config.URL,
		}
	}

	return nil
}

// ValidateEndpoint performs a challenge round-trip: the receiver must echo
// the validation token back with a 2xx status.
func (n *DefaultPushNotifier) ValidateEndpoint(ctx context.Context, config a2a.PushNotificationConfig) error {
	token := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.URL, nil)
	if err != nil {
		return err
	}
	q := req.URL.Query()
	q.Set("validationToken", token)
	req.URL.RawQuery = q.Encode()

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("push notification endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &PushNotificationError{
			StatusCode: resp.StatusCode,
			URL:        config.URL,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return err
	}
	if string(bytes.TrimSpace(body)) != token {
		return fmt.Errorf("push notification endpoint did not echo validation token")
	}
	return nil
}

// Close gracefully shuts down the notifier
func (n *DefaultPushNotifier) Close() error {
	return nil
}

func (n *DefaultPushNotifier) signPayload(payload []byte) (string, error) {
	sum := sha256.Sum256(payload)
	now := flextime.Now()
	claims := jwt.MapClaims{
		"iat":                 now.Unix(),
		"exp":                 now.Add(5 * time.Minute).Unix(),
		"request_body_sha256": hex.EncodeToString(sum[:]),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(n.JWTSecret)
}

// PushNotificationError represents an error during push notification delivery
type PushNotificationError struct {
	StatusCode int
	URL        string
}

func (e *PushNotificationError) Error() string {
	return fmt.Sprintf("push notification failed: HTTP %d for URL %s", e.StatusCode, e.URL)
}
