package transport

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// ClientOption defines configuration option for Client
type ClientOption func(*clientConfig)

// clientConfig holds internal configuration for Client
type clientConfig struct {
	httpClient            *http.Client
	rpcPath               string
	agentCardPath         string
	logger                *slog.Logger
	userAgent             string
	defaultRequestTimeout time.Duration
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithClientRPCPath sets the JSON-RPC endpoint path (default: "/")
func WithClientRPCPath(path string) ClientOption {
	return func(c *clientConfig) {
		c.rpcPath = path
	}
}

// WithClientAgentCardPath sets the agent card endpoint path (default: "/.well-known/agent.json")
func WithClientAgentCardPath(path string) ClientOption {
	return func(c *clientConfig) {
		c.agentCardPath = path
	}
}

// WithClientLogger sets an optional logger for debug output
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(userAgent string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = userAgent
	}
}

// WithDefaultRequestTimeout sets default timeout for requests (default: 30s)
func WithDefaultRequestTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.defaultRequestTimeout = timeout
	}
}

// Client provides A2A JSON-RPC client functionality
type Client struct {
	baseURL string
	config  clientConfig
}

// NewClient creates a new A2A JSON-RPC client
func NewClient(baseURL string, options ...ClientOption) *Client {
	config := clientConfig{
		httpClient:            &http.Client{Timeout: 30 * time.Second},
		rpcPath:               "/",
		agentCardPath:         "/.well-known/agent.json",
		logger:                slog.Default(),
		userAgent:             "CareerCopilot-Client/1.0",
		defaultRequestTimeout: 30 * time.Second,
	}

	for _, option := range options {
		option(&config)
	}

	return &Client{
		baseURL: baseURL,
		config:  config,
	}
}

// buildURL constructs URL for specific endpoint
func (c *Client) buildURL(endpoint string) (string, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	baseURL.Path = path.Join(baseURL.Path, endpoint)
	return baseURL.String(), nil
}

// sendJSONRPCRequest sends a JSON-RPC request and returns the raw response
func (c *Client) sendJSONRPCRequest(ctx context.Context, method string, params interface{}) (*a2a.JSONRPCResponse, error) {
	reqURL, err := c.buildURL(c.config.rpcPath)
	if err != nil {
		return nil, err
	}

	req := a2a.NewJSONRPCRequest(method, params, fmt.Sprintf("req-%d", time.Now().UnixNano()))

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON-RPC request: %w", err)
	}

	c.config.logger.Debug("Sending JSON-RPC request",
		"method", method,
		"url", reqURL,
		"id", req.ID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.config.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.userAgent)
	}

	httpResp, err := c.config.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.config.logger.Debug("Received JSON-RPC response",
		"status", httpResp.StatusCode,
		"contentType", httpResp.Header.Get("Content-Type"),
		"bodySize", len(respBody))

	var jsonrpcResp a2a.JSONRPCResponse
	if err := json.Unmarshal(respBody, &jsonrpcResp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON-RPC response: %w", err)
	}

	if jsonrpcResp.Error != nil {
		return nil, &a2a.JSONRPCError{
			Code:    jsonrpcResp.Error.Code,
			Message: jsonrpcResp.Error.Message,
			Data:    jsonrpcResp.Error.Data,
		}
	}

	return &jsonrpcResp, nil
}

// decodeResult re-decodes the untyped JSON-RPC result into out.
func decodeResult(resp *a2a.JSONRPCResponse, out interface{}) error {
	resultBytes, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := json.Unmarshal(resultBytes, out); err != nil {
		return fmt.Errorf("failed to parse response result: %w", err)
	}
	return nil
}

// SendTask sends a task using tasks/send and returns the final snapshot
func (c *Client) SendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	resp, err := c.sendJSONRPCRequest(ctx, a2a.MethodSendTask, params)
	if err != nil {
		return nil, err
	}

	var result a2a.Task
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTask retrieves a task using tasks/get method
func (c *Client) GetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	resp, err := c.sendJSONRPCRequest(ctx, a2a.MethodGetTask, params)
	if err != nil {
		return nil, err
	}

	var result a2a.Task
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelTask cancels a task using tasks/cancel method
func (c *Client) CancelTask(ctx context.Context, params a2a.TaskIDParams) (*a2a.Task, error) {
	resp, err := c.sendJSONRPCRequest(ctx, a2a.MethodCancelTask, params)
	if err != nil {
		return nil, err
	}

	var result a2a.Task
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetTaskPushNotification sets push notification config for a task
func (c *Client) SetTaskPushNotification(ctx context.Context, params a2a.TaskPushNotificationConfig) (*a2a.TaskPushNotificationConfig, error) {
	resp, err := c.sendJSONRPCRequest(ctx, a2a.MethodSetTaskPushNotification, params)
	if err != nil {
		return nil, err
	}

	var result a2a.TaskPushNotificationConfig
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTaskPushNotification gets push notification config for a task
func (c *Client) GetTaskPushNotification(ctx context.Context, params a2a.TaskIDParams) (*a2a.TaskPushNotificationConfig, error) {
	resp, err := c.sendJSONRPCRequest(ctx, a2a.MethodGetTaskPushNotification, params)
	if err != nil {
		return nil, err
	}

	var result a2a.TaskPushNotificationConfig
	if err := decodeResult(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendTaskSubscribe sends a task using tasks/sendSubscribe and returns the
// decoded event stream. The channel closes when the server ends the stream;
// canceling ctx aborts it.
func (c *Client) SendTaskSubscribe(ctx context.Context, params a2a.TaskSendParams) (<-chan StreamItem, error) {
	return c.streamJSONRPCRequest(ctx, a2a.MethodSendTaskSubscribe, params)
}

// Resubscribe re-attaches to a task's event stream using tasks/resubscribe
func (c *Client) Resubscribe(ctx context.Context, params a2a.TaskQueryParams) (<-chan StreamItem, error) {
	return c.streamJSONRPCRequest(ctx, a2a.MethodTaskResubscription, params)
}

// StreamItem is one decoded SSE event: either a task event or a
// server-reported stream error.
type StreamItem struct {
	Event a2a.TaskEvent
	Err   *a2a.JSONRPCError
}

// streamJSONRPCRequest issues a streaming method call and decodes the SSE body
func (c *Client) streamJSONRPCRequest(ctx context.Context, method string, params interface{}) (<-chan StreamItem, error) {
	reqURL, err := c.buildURL(c.config.rpcPath)
	if err != nil {
		return nil, err
	}

	req := a2a.NewJSONRPCRequest(method, params, fmt.Sprintf("req-%d", time.Now().UnixNano()))
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON-RPC request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.config.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.userAgent)
	}

	// Streaming requests must not be cut off by the client timeout.
	httpClient := c.config.httpClient
	if httpClient.Timeout != 0 {
		clientCopy := *httpClient
		clientCopy.Timeout = 0
		httpClient = &clientCopy
	}

	httpResp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	if ct := httpResp.Header.Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		defer httpResp.Body.Close()
		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		var jsonrpcResp a2a.JSONRPCResponse
		if err := json.Unmarshal(respBody, &jsonrpcResp); err != nil {
			return nil, fmt.Errorf("unexpected non-stream response (status %d)", httpResp.StatusCode)
		}
		if jsonrpcResp.Error != nil {
			return nil, jsonrpcResp.Error
		}
		return nil, fmt.Errorf("unexpected non-stream response (status %d)", httpResp.StatusCode)
	}

	items := make(chan StreamItem)
	go func() {
		defer close(items)
		defer httpResp.Body.Close()

		scanner := bufio.NewScanner(httpResp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			payload := strings.TrimPrefix(line, "data: ")

			var resp struct {
				Result *a2a.TaskEvent    `json:"result"`
				Error  *a2a.JSONRPCError `json:"error"`
			}
			if err := json.Unmarshal([]byte(payload), &resp); err != nil {
				c.config.logger.Warn("failed to decode SSE event", "error", err)
				continue
			}

			var item StreamItem
			if resp.Error != nil {
				item.Err = resp.Error
			} else if resp.Result != nil {
				item.Event = *resp.Result
			} else {
				continue
			}

			select {
			case items <- item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return items, nil
}

// GetAgentCard retrieves the agent card
func (c *Client) GetAgentCard(ctx context.Context) (*a2a.AgentCard, error) {
	cardURL, err := c.buildURL(c.config.agentCardPath)
	if err != nil {
		return nil, err
	}

	c.config.logger.Debug("Fetching agent card", "url", cardURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, cardURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if c.config.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.userAgent)
	}

	httpResp, err := c.config.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent card request failed with status %d", httpResp.StatusCode)
	}

	var agentCard a2a.AgentCard
	if err := json.NewDecoder(httpResp.Body).Decode(&agentCard); err != nil {
		return nil, fmt.Errorf("failed to parse agent card: %w", err)
	}

	return &agentCard, nil
}
