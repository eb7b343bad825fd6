package copilot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/fujiwara/ridge"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
	"github.com/workonwardfoundation/agentic-ai-career-assistant/transport"
)

// Server provides a high-level interface for running an A2A agent service
// with sensible defaults and easy configuration, similar to http.Server
type Server struct {
	// Addr specifies the TCP address for the server to listen on,
	// in the form "host:port". If empty, ":80" is used.
	Addr string

	// RPCPath specifies the base path for the JSON-RPC API.
	RPCPath string

	// AgentCardPath specifies the path for the agent card endpoint.
	AgentCardPath string

	// Store specifies the task store backend.
	// If nil, a FileTaskStore with default location is used.
	Store TaskStore

	// Agent specifies the worker agent implementation.
	// This field is required and cannot be nil.
	Agent Agent

	// AgentCard describes the agent at the well-known endpoint.
	// If nil, a minimal card is derived from the Agent.
	AgentCard *a2a.AgentCard

	// Authenticator specifies the authentication provider for the server.
	// If nil, no authentication is required.
	Authenticator transport.Authenticator

	// Policy specifies the request policies applied before dispatch.
	// If nil, transport.DefaultPolicy() is used.
	Policy *transport.Policy

	// PushNotifier delivers task events to registered webhooks.
	// If nil, a DefaultPushNotifier is used.
	PushNotifier PushNotifier

	// Logger for server and task lifecycle events. Defaults to slog.Default().
	Logger *slog.Logger

	LambdaOptions []lambda.Option // Options for AWS Lambda integration

	// Internal fields
	taskManager    *TaskManager
	httpServer     *http.Server
	mux            *http.ServeMux                    // HTTP request multiplexer
	customHandlers map[string]http.Handler           // Custom handlers stored before initialization
	middlewares    []func(http.Handler) http.Handler // HTTP middlewares applied to all requests
	mu             sync.Mutex
}

// Use adds HTTP middlewares to the server.
// Middlewares are applied to all HTTP requests in the order they are added.
func (s *Server) Use(middlewares ...func(http.Handler) http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middlewares = append(s.middlewares, middlewares...)
}

// Run starts the server and blocks until the server shuts down.
func (s *Server) Run() error {
	return s.RunWithContext(context.Background())
}

// RunWithContext starts the server with the given context and blocks until
// the server shuts down or the context is cancelled.
func (s *Server) RunWithContext(ctx context.Context) error {
	if err := s.initialize(); err != nil {
		return err
	}

	if ridge.OnLambdaRuntime() {
		// If running on AWS Lambda, use the Lambda handler
		return s.runOnLambdaRuntime(ctx)
	}

	// Start HTTP server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		// Context cancelled, shutdown gracefully
		return s.Shutdown(context.Background())
	case err := <-errChan:
		// Server error
		return err
	}
}

func (s *Server) runOnLambdaRuntime(ctx context.Context) error {
	opts := append([]lambda.Option{
		lambda.WithContext(ctx),
	}, s.LambdaOptions...)
	lambda.StartWithOptions(
		func(ctx context.Context, event json.RawMessage) (interface{}, error) {
			req, err := ridge.NewRequest(event)
			if err != nil || req.Method == "" || req.URL.Path == "" {
				slog.ErrorContext(ctx, "Received non-HTTP event", "payload", string(event))
				return nil, fmt.Errorf("unsupported event payload")
			}
			// SSE responses need the streaming writer
			w := ridge.NewStreamingResponseWriter()
			go func() {
				defer func() {
					if r := recover(); r != nil {
						slog.ErrorContext(ctx, "Panic in streaming handler", "panic", r)
					}
					w.Close()
				}()
				s.mux.ServeHTTP(w, req.WithContext(ctx))
			}()
			w.Wait()
			return w.Response(), nil
		},
		opts...,
	)
	return nil
}

// Shutdown gracefully shuts down the server without interrupting any
// active connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error

	// Shutdown HTTP server
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server shutdown error: %w", err))
		}
	}

	// Close the push notifier
	if s.taskManager != nil && s.taskManager.PushNotifier != nil {
		if err := s.taskManager.PushNotifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("push notifier close error: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}

// initialize sets up the server with default values if not configured
func (s *Server) initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Agent is required
	if s.Agent == nil {
		return errors.New("Agent field is required and cannot be nil")
	}

	// Set default address
	if s.Addr == "" {
		s.Addr = ":80"
	}

	// Set default store if not provided
	if s.Store == nil {
		storeDir := "/tmp/a2a"
		if envDir := os.Getenv("A2A_STORE_DIR"); envDir != "" {
			storeDir = envDir
		}

		var err error
		s.Store, err = NewFileTaskStore(storeDir)
		if err != nil {
			return fmt.Errorf("failed to create default task store: %w", err)
		}
	}

	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Policy == nil {
		s.Policy = transport.DefaultPolicy()
	}
	if s.PushNotifier == nil {
		s.PushNotifier = NewDefaultPushNotifier()
	}

	// Create task manager if not already initialized
	if s.taskManager == nil {
		s.taskManager = NewTaskManager(s.Store, s.Agent, func(m *TaskManager) {
			m.Logger = s.Logger
			m.PushNotifier = s.PushNotifier
		})
	}

	if s.RPCPath == "" {
		s.RPCPath = transport.DefaultRPCPath
	}
	if s.AgentCardPath == "" {
		s.AgentCardPath = transport.DefaultAgentCardPath
	}
	if s.mux == nil {
		handlerOptions := []transport.HandlerOption{
			transport.WithRPCPath(s.RPCPath),
			transport.WithAgentCardPath(s.AgentCardPath),
			transport.WithLogger(s.Logger),
			transport.WithPolicy(s.Policy),
			transport.WithAgentCard(s.agentCard()),
		}
		if s.Authenticator != nil {
			handlerOptions = append(handlerOptions, transport.WithAuthenticator(s.Authenticator))
		}
		handler := transport.NewHandler(s.taskManager, handlerOptions...)
		s.mux = http.NewServeMux()
		s.mux.Handle(s.RPCPath, handler)
		s.mux.Handle(s.AgentCardPath, handler)

		// Register custom handlers
		for pattern, customHandler := range s.customHandlers {
			s.mux.Handle(pattern, customHandler)
		}
		s.customHandlers = nil // Clear to free memory
	}

	// Create HTTP server if not already initialized
	if s.httpServer == nil {
		// Apply middleware chain to the mux
		handler := s.applyMiddleware(s.mux)

		s.httpServer = &http.Server{
			Addr:              s.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 30 * time.Second,
		}
	}

	return nil
}

// agentCard returns the configured card or derives a minimal one from the Agent.
func (s *Server) agentCard() *a2a.AgentCard {
	if s.AgentCard != nil {
		return s.AgentCard
	}
	return &a2a.AgentCard{
		Name:               "Career Copilot Agent",
		Description:        "A2A career assistant agent",
		URL:                transport.PlaceholderURL,
		Version:            "1.0.0",
		DefaultInputModes:  []string{"text", "text/plain"},
		DefaultOutputModes: s.Agent.SupportedContentTypes(),
		Capabilities: a2a.AgentCapabilities{
			Streaming:         true,
			PushNotifications: s.PushNotifier != nil,
		},
	}
}

// isProtectedPattern checks if the pattern conflicts with A2A endpoints
func (s *Server) isProtectedPattern(pattern string) bool {
	// Check against current RPC and AgentCard paths
	rpcPath := s.RPCPath
	if rpcPath == "" {
		rpcPath = transport.DefaultRPCPath
	}

	agentCardPath := s.AgentCardPath
	if agentCardPath == "" {
		agentCardPath = transport.DefaultAgentCardPath
	}

	return pattern == rpcPath || pattern == agentCardPath
}

// Handle registers a handler for the given pattern.
// It panics if the pattern is already registered or conflicts with A2A endpoints.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check for A2A endpoint conflicts
	if s.isProtectedPattern(pattern) {
		panic(fmt.Sprintf("pattern %s conflicts with A2A endpoints", pattern))
	}

	// If mux is already initialized, register directly
	if s.mux != nil {
		s.mux.Handle(pattern, handler)
		return
	}

	// Store for later registration during initialization
	if s.customHandlers == nil {
		s.customHandlers = make(map[string]http.Handler)
	}

	// Check for duplicate patterns in custom handlers
	if _, exists := s.customHandlers[pattern]; exists {
		panic(fmt.Sprintf("http: multiple registrations for %s", pattern))
	}

	s.customHandlers[pattern] = handler
}

// HandleFunc registers a handler function for the given pattern.
// It panics if the pattern is already registered or conflicts with A2A endpoints.
func (s *Server) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.Handle(pattern, http.HandlerFunc(handler))
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler(r *http.Request) (http.Handler, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure server is initialized
	if s.mux == nil {
		if err := s.initialize(); err != nil {
			panic(fmt.Sprintf("failed to initialize server: %v", err))
		}
	}

	return s.mux.Handler(r)
}

// applyMiddleware applies all registered middlewares to the given handler
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middlewares in registration order (first registered wraps outermost)
	result := handler
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		result = s.middlewares[i](result)
	}
	return result
}
