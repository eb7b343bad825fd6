package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
)

// JSONRPCMethodHandler defines the signature for JSON-RPC method handlers
type JSONRPCMethodHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Default endpoint paths
const (
	DefaultRPCPath       = "/"
	DefaultAgentCardPath = "/.well-known/agent.json"
)

// HandlerOption defines configuration option for Handler
type HandlerOption func(*handlerConfig)

// handlerConfig holds internal configuration for Handler
type handlerConfig struct {
	rpcPath              string
	agentCardPath        string
	agentCardCacheMaxAge int
	logger               *slog.Logger
	authenticator        Authenticator
	policy               *Policy
	agentCard            *a2a.AgentCard
}

// WithRPCPath sets the JSON-RPC endpoint path (default: "/")
func WithRPCPath(path string) HandlerOption {
	return func(c *handlerConfig) {
		c.rpcPath = path
	}
}

// WithAgentCardPath sets the agent card endpoint path (default: "/.well-known/agent.json")
func WithAgentCardPath(path string) HandlerOption {
	return func(c *handlerConfig) {
		c.agentCardPath = path
	}
}

// WithAgentCardCacheMaxAge sets cache max-age for agent card in seconds (default: 3600)
func WithAgentCardCacheMaxAge(seconds int) HandlerOption {
	return func(c *handlerConfig) {
		c.agentCardCacheMaxAge = seconds
	}
}

// WithAuthenticator sets the authenticator for the handler
func WithAuthenticator(auth Authenticator) HandlerOption {
	return func(c *handlerConfig) {
		c.authenticator = auth
	}
}

// WithLogger sets an optional logger for debug output
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// WithPolicy sets the request policies applied before dispatch. Tests pass
// nil (the default) to bypass them.
func WithPolicy(policy *Policy) HandlerOption {
	return func(c *handlerConfig) {
		c.policy = policy
	}
}

// WithAgentCard sets the capability descriptor served at the well-known path.
func WithAgentCard(card *a2a.AgentCard) HandlerOption {
	return func(c *handlerConfig) {
		c.agentCard = card
	}
}

// methodDescriptor represents an A2A method with its properties and handler
type methodDescriptor struct {
	method    string                                                                                 // Method name (e.g., "tasks/send")
	mediaType string                                                                                 // Response media type ("application/json" or "text/event-stream")
	handler   func(ctx context.Context, params json.RawMessage, w http.ResponseWriter, id any) error // Handler function
}

// Handler wraps a TaskService and provides JSON-RPC over HTTP handling
type Handler struct {
	mu             sync.RWMutex
	service        TaskService
	methodRegistry map[string]methodDescriptor
	config         handlerConfig
}

// NewHandler creates a new A2A JSON-RPC handler with options
func NewHandler(service TaskService, options ...HandlerOption) *Handler {
	config := handlerConfig{
		rpcPath:              DefaultRPCPath,
		agentCardPath:        DefaultAgentCardPath,
		agentCardCacheMaxAge: 3600,
		logger:               slog.Default(),
	}

	for _, option := range options {
		option(&config)
	}

	h := &Handler{
		service: service,
		config:  config,
	}
	h.initMethodRegistry()
	return h
}

// initMethodRegistry initializes the method registry with all supported A2A methods
func (h *Handler) initMethodRegistry() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.methodRegistry = make(map[string]methodDescriptor)

	// JSON methods (unified registration)
	h.registerJSONMethod(a2a.MethodSendTask, h.handleSendTask)
	h.registerJSONMethod(a2a.MethodGetTask, h.handleGetTask)
	h.registerJSONMethod(a2a.MethodCancelTask, h.handleCancelTask)
	h.registerJSONMethod(a2a.MethodSetTaskPushNotification, h.handleSetTaskPushNotification)
	h.registerJSONMethod(a2a.MethodGetTaskPushNotification, h.handleGetTaskPushNotification)

	// Streaming methods
	h.registerStreamMethod(a2a.MethodSendTaskSubscribe, h.handleSendTaskSubscribe)
	h.registerStreamMethod(a2a.MethodTaskResubscription, h.handleTaskResubscribe)
}

// RegisterMethod registers a JSON-RPC method with simplified handler
func (h *Handler) RegisterMethod(method string, handler JSONRPCMethodHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.methodRegistry[method]; exists {
		panic(fmt.Sprintf("method %s already registered", method))
	}
	h.registerJSONMethod(method, handler)
}

// registerJSONMethod registers a JSON-RPC method (internal use)
func (h *Handler) registerJSONMethod(method string, handler JSONRPCMethodHandler) {
	wrappedHandler := func(ctx context.Context, params json.RawMessage, w http.ResponseWriter, id interface{}) error {
		result, err := handler(ctx, params)
		if err != nil {
			var jsonrpcErr *a2a.JSONRPCError
			if errors.As(err, &jsonrpcErr) {
				h.writeErrorResponse(w, id, jsonrpcErr.Code, jsonrpcErr.Message, jsonrpcErr.Data)
				return nil
			}
			h.writeErrorResponse(w, id, a2a.ErrorCodeInternalError, a2a.ErrorCodeText(a2a.ErrorCodeInternalError), err.Error())
			return nil
		}

		h.writeSuccessResponse(w, id, result)
		return nil
	}

	h.methodRegistry[method] = methodDescriptor{
		method:    method,
		mediaType: "application/json",
		handler:   wrappedHandler,
	}
}

// registerStreamMethod registers a streaming method (internal use only)
func (h *Handler) registerStreamMethod(method string, handler func(ctx context.Context, params json.RawMessage, w http.ResponseWriter, id any) error) {
	h.methodRegistry[method] = methodDescriptor{
		method:    method,
		mediaType: "text/event-stream",
		handler:   handler,
	}
}

// ServeHTTP implements http.Handler interface
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.config.policy != nil && h.config.policy.SecurityHeaders {
		applySecurityHeaders(w)
	}

	// Handle Agent Card endpoint (no authentication required)
	if r.Method == http.MethodGet && r.URL.Path == h.config.agentCardPath {
		h.config.logger.Debug("Handling agent card request", "path", r.URL.Path)
		h.handleWellKnownAgentCard(w, r)
		return
	}

	// Handle JSON-RPC endpoint
	if r.URL.Path != h.config.rpcPath {
		http.NotFound(w, r)
		return
	}

	// Only accept POST requests for JSON-RPC
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Request policies run before authentication and dispatch; a rejected
	// request never reaches the lifecycle engine.
	if policy := h.config.policy; policy != nil && policy.RateLimit != nil {
		clientID := ClientID(r)
		if !policy.RateLimit.Allow(clientID) {
			h.config.logger.Warn("rate limit exceeded", "clientId", clientID)
			h.writePolicyError(w, http.StatusTooManyRequests, a2a.ErrorCodeRateLimitExceeded)
			return
		}
		r = r.WithContext(WithClientID(r.Context(), clientID))
	}

	// Authentication check for JSON-RPC requests
	if h.config.authenticator != nil {
		newReq, err := h.config.authenticator.Authenticate(r.Context(), r)
		if err != nil {
			h.writeAuthError(w, err)
			return
		}
		r = newReq
	}

	// Parse JSON-RPC request, capping the body first if configured
	bodyReader := r.Body
	if policy := h.config.policy; policy != nil && policy.MaxBodyBytes > 0 {
		bodyReader = http.MaxBytesReader(w, r.Body, policy.MaxBodyBytes)
	}
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writePolicyError(w, http.StatusRequestEntityTooLarge, a2a.ErrorCodeRequestTooLarge)
			return
		}
		h.writeErrorResponse(w, nil, a2a.ErrorCodeParseError, a2a.ErrorCodeText(a2a.ErrorCodeParseError), nil)
		return
	}

	var req a2a.JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeErrorResponse(w, nil, a2a.ErrorCodeParseError, a2a.ErrorCodeText(a2a.ErrorCodeParseError), err.Error())
		return
	}

	// Validate JSON-RPC version
	if req.JSONRpc != "2.0" {
		h.writeErrorResponse(w, req.ID, a2a.ErrorCodeInvalidRequest, a2a.ErrorCodeText(a2a.ErrorCodeInvalidRequest), nil)
		return
	}

	if policy := h.config.policy; policy != nil && policy.SanitizeInput {
		req.Params = SanitizeValue(req.Params)
	}

	ctx := WithHTTPHeaders(r.Context(), r.Header)
	h.routeMethodByRegistry(ctx, req, w, r.Header.Get("Accept"))
}

// routeMethodByRegistry routes the method using the method registry
func (h *Handler) routeMethodByRegistry(ctx context.Context, req a2a.JSONRPCRequest, w http.ResponseWriter, acceptHeader string) {
	entity, exists := h.methodRegistry[req.Method]

	if !exists {
		h.writeErrorResponse(w, req.ID, a2a.ErrorCodeMethodNotFound, a2a.ErrorCodeText(a2a.ErrorCodeMethodNotFound), map[string]string{"method": req.Method})
		return
	}

	isSSEMethod := entity.mediaType == "text/event-stream"
	if isSSEMethod {
		h.setupSSEHeaders(w)
	}

	// Convert params to json.RawMessage for handler
	paramsRaw, err := json.Marshal(req.Params)
	if err != nil {
		if isSSEMethod {
			h.writeSSEError(w, req.ID, a2a.ErrorCodeInvalidParams, a2a.ErrorCodeText(a2a.ErrorCodeInvalidParams), err.Error())
		} else {
			h.writeErrorResponse(w, req.ID, a2a.ErrorCodeInvalidParams, a2a.ErrorCodeText(a2a.ErrorCodeInvalidParams), err.Error())
		}
		return
	}

	// Execute the handler
	err = entity.handler(ctx, paramsRaw, w, req.ID)
	if err != nil {
		var jsonrpcErr *a2a.JSONRPCError
		if errors.As(err, &jsonrpcErr) {
			if isSSEMethod {
				h.writeSSEError(w, req.ID, jsonrpcErr.Code, jsonrpcErr.Message, jsonrpcErr.Data)
			} else {
				h.writeErrorResponse(w, req.ID, jsonrpcErr.Code, jsonrpcErr.Message, jsonrpcErr.Data)
			}
			return
		}

		if isSSEMethod {
			h.writeSSEError(w, req.ID, a2a.ErrorCodeInternalError, a2a.ErrorCodeText(a2a.ErrorCodeInternalError), err.Error())
		} else {
			h.writeErrorResponse(w, req.ID, a2a.ErrorCodeInternalError, a2a.ErrorCodeText(a2a.ErrorCodeInternalError), err.Error())
		}
		return
	}

	// For non-SSE methods that return success, the handler should have already written the response
	// SSE methods handle their own streaming responses
}

// handleSendTask handles tasks/send as JSONRPCMethodHandler
func (h *Handler) handleSendTask(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req a2a.TaskSendParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, a2a.NewJSONRPCInvalidParamsError("Failed to parse task send parameters")
	}
	return h.service.OnSendTask(ctx, req)
}

// handleGetTask handles tasks/get as JSONRPCMethodHandler
func (h *Handler) handleGetTask(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req a2a.TaskQueryParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, a2a.NewJSONRPCInvalidParamsError("Failed to parse task query parameters")
	}
	return h.service.OnGetTask(ctx, req)
}

// handleCancelTask handles tasks/cancel as JSONRPCMethodHandler
func (h *Handler) handleCancelTask(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req a2a.TaskIDParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, a2a.NewJSONRPCInvalidParamsError("Failed to parse task ID parameters")
	}
	return h.service.OnCancelTask(ctx, req)
}

// handleSetTaskPushNotification handles tasks/pushNotification/set as JSONRPCMethodHandler
func (h *Handler) handleSetTaskPushNotification(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req a2a.TaskPushNotificationConfig
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, a2a.NewJSONRPCInvalidParamsError("Failed to parse push notification config parameters")
	}
	return h.service.OnSetTaskPushNotification(ctx, req)
}

// handleGetTaskPushNotification handles tasks/pushNotification/get as JSONRPCMethodHandler
func (h *Handler) handleGetTaskPushNotification(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req a2a.TaskIDParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, a2a.NewJSONRPCInvalidParamsError("Failed to parse task ID parameters")
	}
	return h.service.OnGetTaskPushNotification(ctx, req)
}

// handleSendTaskSubscribe handles tasks/sendSubscribe JSON-RPC method with SSE
func (h *Handler) handleSendTaskSubscribe(ctx context.Context, params json.RawMessage, w http.ResponseWriter, id interface{}) error {
	var req a2a.TaskSendParams
	if err := json.Unmarshal(params, &req); err != nil {
		return a2a.NewJSONRPCInvalidParamsError("Failed to parse task send parameters")
	}

	streamChan, err := h.service.OnSendTaskSubscribe(ctx, req)
	if err != nil {
		return err
	}

	return writeSSEStream(w, id, streamChan)
}

// handleTaskResubscribe handles tasks/resubscribe JSON-RPC method with SSE
func (h *Handler) handleTaskResubscribe(ctx context.Context, params json.RawMessage, w http.ResponseWriter, id interface{}) error {
	var req a2a.TaskQueryParams
	if err := json.Unmarshal(params, &req); err != nil {
		return a2a.NewJSONRPCInvalidParamsError("Failed to parse task query parameters")
	}

	streamChan, err := h.service.OnResubscribe(ctx, req)
	if err != nil {
		return err
	}

	return writeSSEStream(w, id, streamChan)
}

// handleWellKnownAgentCard handles GET requests for agent card endpoint
func (h *Handler) handleWellKnownAgentCard(w http.ResponseWriter, r *http.Request) {
	if h.config.agentCard == nil {
		h.config.logger.Error("no agent card configured")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	card := *h.config.agentCard
	if card.URL == "" || card.URL == PlaceholderURL {
		card.URL = h.buildRequestBaseEndpoint(r)
	}
	if finalURL, err := url.JoinPath(card.URL, h.config.rpcPath); err == nil {
		card.URL = finalURL
	}

	w.Header().Set("Content-Type", "application/json")
	if h.config.agentCardCacheMaxAge > 0 {
		w.Header().Set("Cache-Control",
			fmt.Sprintf("public, max-age=%d", h.config.agentCardCacheMaxAge))
	}

	if err := json.NewEncoder(w).Encode(&card); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// buildRequestBaseEndpoint constructs base endpoint from HTTP request considering proxies
func (h *Handler) buildRequestBaseEndpoint(r *http.Request) string {
	// Check X-Forwarded-Proto first, then fallback to TLS detection
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}

	// Check X-Forwarded-Host first, then fallback to Host header
	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}

	return fmt.Sprintf("%s://%s/", scheme, host)
}

// writeSuccessResponse writes a successful JSON-RPC response
func (h *Handler) writeSuccessResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := a2a.NewJSONRPCResponse(result, id)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.config.logger.Error("failed to write response", "error", err)
	}
}

// writeErrorResponse writes an error JSON-RPC response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	resp := a2a.NewJSONRPCErrorResponse(code, message, data, id)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK) // JSON-RPC errors are still HTTP 200
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.config.logger.Error("failed to write response", "error", err)
	}
}

// writePolicyError writes a policy rejection: unlike protocol errors these
// carry a non-200 HTTP status, matching their transport-boundary nature.
func (h *Handler) writePolicyError(w http.ResponseWriter, httpStatus, code int) {
	resp := a2a.NewJSONRPCErrorResponse(code, a2a.ErrorCodeText(code), nil, nil)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.config.logger.Error("failed to write response", "error", err)
	}
}

// setupSSEHeaders sets up Server-Sent Events headers
func (h *Handler) setupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEError writes an error as SSE event
func (h *Handler) writeSSEError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	resp := a2a.NewJSONRPCErrorResponse(code, message, data, id)

	respBytes, err := json.Marshal(resp)
	if err != nil {
		h.config.logger.Error("failed to marshal SSE error response", "error", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", respBytes)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// canHandle checks if the handler can process the request
func (h *Handler) canHandle(r *http.Request) bool {
	return (r.Method == http.MethodGet && r.URL.Path == h.config.agentCardPath) ||
		(r.Method == http.MethodPost && r.URL.Path == h.config.rpcPath)
}

// A2AMiddleware creates middleware that handles A2A requests and passes others to next handler
func A2AMiddleware(service TaskService, options ...HandlerOption) func(http.Handler) http.Handler {
	a2aHandler := NewHandler(service, options...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a2aHandler.canHandle(r) {
				a2aHandler.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeSSEStream writes a stream of task events from a channel as Server-Sent Events.
// Each event is wrapped in a JSON-RPC response envelope.
func writeSSEStream(w http.ResponseWriter, id interface{}, streamChan <-chan a2a.TaskEvent) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	for event := range streamChan {
		jsonrpcResp := a2a.NewJSONRPCResponse(event, id)

		respBytes, err := json.Marshal(jsonrpcResp)
		if err != nil {
			errorResp := a2a.NewInternalError(id, err.Error())
			errorBytes, err := json.Marshal(errorResp)
			if err != nil {
				// This should not happen with a well-formed response structure
				return err
			}
			fmt.Fprintf(w, "data: %s\n\n", errorBytes)
			flusher.Flush()
			continue
		}

		fmt.Fprintf(w, "data: %s\n\n", respBytes)
		flusher.Flush()
	}

	return nil
}

// WriteSSEError writes an error event as Server-Sent Events
func WriteSSEError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	errorResp := a2a.NewJSONRPCErrorResponse(code, message, data, id)

	respBytes, err := json.Marshal(errorResp)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "data: %s\n\n", respBytes)
	flusher.Flush()

	return nil
}

// writeAuthError writes an authentication error response
func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	var authErr *AuthError
	var errorResp a2a.JSONRPCResponse
	if errors.As(err, &authErr) {
		errorResp = a2a.NewJSONRPCErrorResponse(
			a2a.ErrorCodeInvalidRequest,
			authErr.Message,
			map[string]interface{}{
				"code":   authErr.Code,
				"scheme": authErr.Scheme,
			},
			nil,
		)
	} else {
		errorResp = a2a.NewJSONRPCErrorResponse(
			a2a.ErrorCodeInvalidRequest,
			"Authentication required",
			nil,
			nil,
		)
	}

	respBytes, _ := json.Marshal(errorResp)
	w.Write(respBytes)
}
