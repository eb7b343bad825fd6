package copilottest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	copilot "github.com/workonwardfoundation/agentic-ai-career-assistant"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/transport"
)

// TestServer wraps httptest.Server to provide A2A protocol testing
// capabilities. It wires an in-memory TaskManager and HTTP handler for
// testing A2A agents.
type TestServer struct {
	*httptest.Server

	// TaskManager is the underlying engine that handles A2A requests
	TaskManager *copilot.TaskManager

	// Agent is the agent being tested
	Agent copilot.Agent
}

// NewServer creates a new test server for the given agent.
// It uses an InMemoryTaskStore and no request policies, so tests hit the
// dispatcher directly.
//
// Example usage:
//
//	agent := copilottest.NewScriptedAgent("all done")
//	server := copilottest.NewServer(t, agent)
//	defer server.Close()
//
//	client := server.Client()
//	task, err := client.SendTask(ctx, params)
func NewServer(tb testing.TB, agent copilot.Agent, options ...transport.HandlerOption) *TestServer {
	tb.Helper()

	manager := copilot.NewTaskManager(copilot.NewInMemoryTaskStore(), agent)

	opts := append([]transport.HandlerOption{
		transport.WithAgentCard(&a2a.AgentCard{
			Name:               "Test Agent",
			Description:        "agent under test",
			URL:                transport.PlaceholderURL,
			Version:            "0.0.1",
			DefaultInputModes:  []string{"text"},
			DefaultOutputModes: agent.SupportedContentTypes(),
			Capabilities:       a2a.AgentCapabilities{Streaming: true, PushNotifications: true},
		}),
	}, options...)
	handler := transport.NewHandler(manager, opts...)

	httpServer := httptest.NewServer(handler)

	return &TestServer{
		Server:      httpServer,
		TaskManager: manager,
		Agent:       agent,
	}
}

// URL returns the base URL of the test server.
// This can be used with transport.NewClient to create a client for testing.
func (s *TestServer) URL() string {
	return s.Server.URL
}

// Close shuts down the test server.
// This should be called when the test is complete, typically in a defer statement.
func (s *TestServer) Close() {
	s.Server.Close()
}

// Client creates a new transport.Client configured to communicate with this test server.
// This is a convenience method that creates a client with the correct URL.
func (s *TestServer) Client(opts ...transport.ClientOption) *transport.Client {
	return transport.NewClient(s.URL(), opts...)
}

// ClientWithHeaders creates a transport.Client that automatically adds specified HTTP headers to all requests.
// This is useful for testing scenarios where headers drive behavior, such as
// rate limiting identities or authentication.
func (s *TestServer) ClientWithHeaders(headers http.Header, opts ...transport.ClientOption) *transport.Client {
	// Create a custom transport that adds headers to every request
	headerTransport := &headerAddingTransport{
		base:    http.DefaultTransport,
		headers: headers,
	}

	// Add custom transport to client options
	httpClient := &http.Client{Transport: headerTransport}
	opts = append(opts, transport.WithHTTPClient(httpClient))

	return transport.NewClient(s.URL(), opts...)
}

// headerAddingTransport is a custom http.RoundTripper that automatically adds headers to requests
type headerAddingTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerAddingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	newReq := req.Clone(req.Context())

	// Set headers to the cloned request (overwrite any existing headers)
	for key, values := range t.headers {
		// Delete existing header first to ensure clean override
		newReq.Header.Del(key)
		for _, value := range values {
			newReq.Header.Add(key, value)
		}
	}

	return t.base.RoundTrip(newReq)
}
