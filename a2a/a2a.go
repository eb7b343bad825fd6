// Package a2a implements the Agent-to-Agent (A2A) protocol wire types used by
// the career copilot agents: JSON-RPC 2.0 envelopes over HTTP POST, task and
// artifact structures, and the streaming update events.
package a2a

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PartType discriminates the content part union.
type PartType string

const (
	// Part type field values
	PartTypeText PartType = "text"
	PartTypeFile PartType = "file"
	PartTypeData PartType = "data"
)

// String returns the string representation of the part type.
func (t PartType) String() string {
	return string(t)
}

// Role represents the role of a message sender
type Role string

const (
	// Role field values
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// IsValid returns true if the role is valid.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAgent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// TaskState represents the possible states of a Task
type TaskState string

const (
	// Task state values
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateCanceled  TaskState = "canceled"
	TaskStateFailed    TaskState = "failed"
)

// IsValid returns true if the task state is valid.
func (state TaskState) IsValid() bool {
	switch state {
	case TaskStateSubmitted, TaskStateWorking, TaskStateCompleted,
		TaskStateCanceled, TaskStateFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the task state is terminal (final).
func (state TaskState) IsTerminal() bool {
	switch state {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled:
		return true
	default:
		return false
	}
}

// CanCancel returns true if the task can be canceled based on its current state.
func (state TaskState) CanCancel() bool {
	return !state.IsTerminal()
}

// String returns the string representation of the task state.
func (state TaskState) String() string {
	return string(state)
}

// A2A method names
const (
	MethodSendTask                = "tasks/send"
	MethodSendTaskSubscribe       = "tasks/sendSubscribe"
	MethodGetTask                 = "tasks/get"
	MethodCancelTask              = "tasks/cancel"
	MethodSetTaskPushNotification = "tasks/pushNotification/set"
	MethodGetTaskPushNotification = "tasks/pushNotification/get"
	MethodTaskResubscription      = "tasks/resubscribe"
)

// JSON-RPC error codes
const (
	// Standard JSON-RPC error codes
	ErrorCodeParseError     = -32700
	ErrorCodeInvalidRequest = -32600
	ErrorCodeMethodNotFound = -32601
	ErrorCodeInvalidParams  = -32602
	ErrorCodeInternalError  = -32603

	// A2A specific error codes
	ErrorCodeTaskNotFound                 = -32001
	ErrorCodeTaskNotCancelable            = -32002
	ErrorCodePushNotificationNotSupported = -32003
	ErrorCodeUnsupportedOperation         = -32004
	ErrorCodeContentTypeNotSupported      = -32005

	// Transport policy error codes
	ErrorCodeRateLimitExceeded = -32010
	ErrorCodeRequestTooLarge   = -32011
)

// ErrorCodeText returns the text description for an error code.
func ErrorCodeText(code int) string {
	switch code {
	case ErrorCodeParseError:
		return "Invalid JSON payload"
	case ErrorCodeInvalidRequest:
		return "Request payload validation error"
	case ErrorCodeMethodNotFound:
		return "Method not found"
	case ErrorCodeInvalidParams:
		return "Invalid parameters"
	case ErrorCodeInternalError:
		return "Internal error"
	case ErrorCodeTaskNotFound:
		return "Task not found"
	case ErrorCodeTaskNotCancelable:
		return "Task cannot be canceled"
	case ErrorCodePushNotificationNotSupported:
		return "Push Notification is not supported"
	case ErrorCodeUnsupportedOperation:
		return "This operation is not supported"
	case ErrorCodeContentTypeNotSupported:
		return "Incompatible content types"
	case ErrorCodeRateLimitExceeded:
		return "Rate limit exceeded"
	case ErrorCodeRequestTooLarge:
		return "Request payload too large"
	default:
		return "Unknown error"
	}
}

// JSONRPCRequest represents a JSON-RPC 2.0 Request object.
type JSONRPCRequest struct {
	JSONRpc string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      interface{} `json:"id"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 Response object.
type JSONRPCResponse struct {
	JSONRpc string        `json:"jsonrpc"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
	ID      interface{}   `json:"id"`
}

// JSONRPCError represents a JSON-RPC 2.0 Error object.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface for JSONRPCError
func (e *JSONRPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("JSON-RPC error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// TaskSendParams represents parameters for tasks/send and tasks/sendSubscribe.
type TaskSendParams struct {
	ID                  string                  `json:"id"`
	SessionID           string                  `json:"sessionId,omitempty"`
	Message             Message                 `json:"message"`
	AcceptedOutputModes []string                `json:"acceptedOutputModes,omitempty"`
	PushNotification    *PushNotificationConfig `json:"pushNotification,omitempty"`
	HistoryLength       *int                    `json:"historyLength,omitempty"`
	Metadata            map[string]interface{}  `json:"metadata,omitempty"`
}

// TaskQueryParams represents parameters for querying a task.
type TaskQueryParams struct {
	ID            string                 `json:"id"`
	HistoryLength *int                   `json:"historyLength,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// TaskIDParams represents parameters containing only a task ID.
type TaskIDParams struct {
	ID       string                 `json:"id"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// TaskPushNotificationConfig associates a push notification target with a task.
type TaskPushNotificationConfig struct {
	ID                     string                 `json:"id"`
	PushNotificationConfig PushNotificationConfig `json:"pushNotificationConfig"`
}

// PushNotificationConfig represents a callback target for task updates.
type PushNotificationConfig struct {
	URL            string                              `json:"url"`
	Token          string                              `json:"token,omitempty"`
	Authentication *PushNotificationAuthenticationInfo `json:"authentication,omitempty"`
}

// PushNotificationAuthenticationInfo defines authentication details for push notifications.
type PushNotificationAuthenticationInfo struct {
	Schemes     []string `json:"schemes"`
	Credentials string   `json:"credentials,omitempty"`
}

// Message represents a single message exchanged between user and agent.
type Message struct {
	Role     Role                   `json:"role"`
	Parts    []Part                 `json:"parts"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Part represents a part of a message or artifact, which can be text,
// a file, or structured data. Exactly one payload field is set per part.
type Part struct {
	Type     PartType               `json:"type"`
	Text     string                 `json:"text,omitempty"`
	File     *FileContent           `json:"file,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// FileContent represents a file payload within a file part.
type FileContent struct {
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Bytes    string `json:"bytes,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// Task represents the state and execution context of a task.
type Task struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionId,omitempty"`
	Status    TaskStatus     `json:"status"`
	Artifacts []Artifact     `json:"artifacts,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// TaskStatus represents the current state and accompanying message of a task.
// It is replaced wholesale on every transition.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp *string   `json:"timestamp,omitempty"`
}

// Artifact represents an immutable chunk of task output. Index identifies the
// artifact's position; Append marks a continuation of the artifact at the
// same index.
type Artifact struct {
	Name      string         `json:"name,omitempty"`
	Parts     []Part         `json:"parts"`
	Index     int            `json:"index"`
	Append    bool           `json:"append,omitempty"`
	LastChunk bool           `json:"lastChunk,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// TaskStatusUpdateEvent is sent by the server during sendSubscribe or
// resubscribe. Final marks the last event of a task's stream.
type TaskStatusUpdateEvent struct {
	ID       string                 `json:"id"`
	Status   TaskStatus             `json:"status"`
	Final    bool                   `json:"final"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// TaskArtifactUpdateEvent is sent by the server during sendSubscribe or
// resubscribe when an artifact has been appended to the task.
type TaskArtifactUpdateEvent struct {
	ID       string                 `json:"id"`
	Artifact Artifact               `json:"artifact"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// TaskEvent is the union of the streaming event payloads. Exactly one field
// is non-nil.
type TaskEvent struct {
	Status   *TaskStatusUpdateEvent
	Artifact *TaskArtifactUpdateEvent
}

// IsFinal returns true if the event closes the task's stream.
func (e TaskEvent) IsFinal() bool {
	return e.Status != nil && e.Status.Final
}

// MarshalJSON flattens the union to the payload object.
func (e TaskEvent) MarshalJSON() ([]byte, error) {
	switch {
	case e.Status != nil:
		return json.Marshal(e.Status)
	case e.Artifact != nil:
		return json.Marshal(e.Artifact)
	default:
		return nil, fmt.Errorf("task event has no payload")
	}
}

// UnmarshalJSON distinguishes the payload by the presence of the
// "status" / "artifact" keys.
func (e *TaskEvent) UnmarshalJSON(data []byte) error {
	var probe struct {
		Status   json.RawMessage `json:"status"`
		Artifact json.RawMessage `json:"artifact"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch {
	case probe.Status != nil:
		e.Status = &TaskStatusUpdateEvent{}
		return json.Unmarshal(data, e.Status)
	case probe.Artifact != nil:
		e.Artifact = &TaskArtifactUpdateEvent{}
		return json.Unmarshal(data, e.Artifact)
	default:
		return fmt.Errorf("task event has neither status nor artifact")
	}
}

// AgentCard conveys key information about an agent deployment. It is served
// verbatim at the well-known path.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	DocumentationURL   string            `json:"documentationUrl,omitempty"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Skills             []AgentSkill      `json:"skills"`
	Provider           *AgentProvider    `json:"provider,omitempty"`
}

// AgentSkill represents a unit of capability that an agent can perform.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"inputModes,omitempty"`
	OutputModes []string `json:"outputModes,omitempty"`
}

// AgentCapabilities defines optional capabilities supported by an agent.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming,omitempty"`
	PushNotifications      bool `json:"pushNotifications,omitempty"`
	StateTransitionHistory bool `json:"stateTransitionHistory,omitempty"`
}

// AgentProvider represents the service provider of an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url"`
}

// Validate validates a Message structure.
func (m *Message) Validate() error {
	if m.Role == "" {
		return fmt.Errorf("role is required")
	}

	if !m.Role.IsValid() {
		return fmt.Errorf("invalid role %q, must be one of: %s", m.Role, commasJoin(validRoles()))
	}

	if len(m.Parts) == 0 {
		return fmt.Errorf("parts is required and must not be empty")
	}

	for i, part := range m.Parts {
		if err := part.Validate(); err != nil {
			return fmt.Errorf("parts[%d]: %w", i, err)
		}
	}

	return nil
}

// Validate validates a Part structure.
func (p *Part) Validate() error {
	if p.Type == "" {
		return fmt.Errorf("type is required")
	}

	if !isValidPartType(p.Type) {
		return fmt.Errorf("invalid part type %q, must be one of: %s", p.Type, commasJoin(validPartTypes()))
	}

	switch p.Type {
	case PartTypeText:
		if p.Text == "" {
			return fmt.Errorf("text is required for text part")
		}
		if p.File != nil || p.Data != nil {
			return fmt.Errorf("text part cannot have file or data fields")
		}

	case PartTypeFile:
		if p.File == nil {
			return fmt.Errorf("file is required for file part")
		}
		if err := p.File.Validate(); err != nil {
			return fmt.Errorf("file: %w", err)
		}
		if p.Text != "" || p.Data != nil {
			return fmt.Errorf("file part cannot have text or data fields")
		}

	case PartTypeData:
		if p.Data == nil {
			return fmt.Errorf("data is required for data part")
		}
		if p.Text != "" || p.File != nil {
			return fmt.Errorf("data part cannot have text or file fields")
		}
	}

	return nil
}

// Validate validates a FileContent structure.
func (f *FileContent) Validate() error {
	hasURI := f.URI != ""
	hasBytes := f.Bytes != ""

	if hasURI && hasBytes {
		return fmt.Errorf("file part cannot have both uri and bytes")
	}

	if !hasURI && !hasBytes {
		return fmt.Errorf("file part must have either uri or bytes")
	}

	return nil
}

// Validate validates a Task structure.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}

	if err := t.Status.Validate(); err != nil {
		return fmt.Errorf("status: %w", err)
	}

	for i, artifact := range t.Artifacts {
		if err := artifact.Validate(); err != nil {
			return fmt.Errorf("artifacts[%d]: %w", i, err)
		}
	}

	return nil
}

// Validate validates a TaskStatus structure.
func (ts *TaskStatus) Validate() error {
	if ts.State == "" {
		return fmt.Errorf("state is required")
	}

	if !ts.State.IsValid() {
		return fmt.Errorf("invalid task state %q, must be one of: %s", ts.State, commasJoin(validTaskStates()))
	}

	if ts.Message != nil {
		if err := ts.Message.Validate(); err != nil {
			return fmt.Errorf("message: %w", err)
		}
	}

	return nil
}

// Validate validates an Artifact structure.
func (a *Artifact) Validate() error {
	if len(a.Parts) == 0 {
		return fmt.Errorf("parts is required and must not be empty")
	}

	if a.Index < 0 {
		return fmt.Errorf("index must not be negative")
	}

	for i, part := range a.Parts {
		if err := part.Validate(); err != nil {
			return fmt.Errorf("parts[%d]: %w", i, err)
		}
	}

	return nil
}

// Validate validates the send parameters.
func (p *TaskSendParams) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}

	if err := p.Message.Validate(); err != nil {
		return fmt.Errorf("message: %w", err)
	}

	if p.PushNotification != nil {
		if err := p.PushNotification.Validate(); err != nil {
			return fmt.Errorf("pushNotification: %w", err)
		}
	}

	return nil
}

// Validate validates a PushNotificationConfig structure.
func (c *PushNotificationConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("url must be an http(s) endpoint")
	}
	return nil
}

// Validate validates a JSON-RPC request envelope.
func (r *JSONRPCRequest) Validate() error {
	if r.JSONRpc != "2.0" {
		return fmt.Errorf("jsonrpc must be \"2.0\", got %q", r.JSONRpc)
	}

	if r.Method == "" {
		return fmt.Errorf("method is required")
	}

	if r.ID == nil {
		return fmt.Errorf("id is required")
	}

	return nil
}

// Helper functions for validation
func commasJoin[T fmt.Stringer](items []T) string {
	var parts []string
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, ", ")
}

func validRoles() []Role {
	return []Role{RoleUser, RoleAgent}
}

func isValidPartType(t PartType) bool {
	switch t {
	case PartTypeText, PartTypeFile, PartTypeData:
		return true
	default:
		return false
	}
}

func validPartTypes() []PartType {
	return []PartType{PartTypeText, PartTypeFile, PartTypeData}
}

func validTaskStates() []TaskState {
	return []TaskState{
		TaskStateSubmitted, TaskStateWorking,
		TaskStateCompleted, TaskStateCanceled, TaskStateFailed,
	}
}

// NewTextPart creates a new text part.
func NewTextPart(text string) Part {
	return Part{
		Type: PartTypeText,
		Text: text,
	}
}

// NewFilePart creates a new file part with URI.
func NewFilePart(uri, name, mimeType string) Part {
	return Part{
		Type: PartTypeFile,
		File: &FileContent{
			URI:      uri,
			Name:     name,
			MimeType: mimeType,
		},
	}
}

// NewFilePartWithBytes creates a new file part with base64 bytes.
func NewFilePartWithBytes(bytes, name, mimeType string) Part {
	return Part{
		Type: PartTypeFile,
		File: &FileContent{
			Bytes:    bytes,
			Name:     name,
			MimeType: mimeType,
		},
	}
}

// NewDataPart creates a new data part.
func NewDataPart(data map[string]interface{}) Part {
	return Part{
		Type: PartTypeData,
		Data: data,
	}
}

// NewUserMessage creates a user-role message from parts.
func NewUserMessage(parts ...Part) Message {
	return Message{
		Role:  RoleUser,
		Parts: parts,
	}
}

// NewAgentMessage creates an agent-role message from parts.
func NewAgentMessage(parts ...Part) Message {
	return Message{
		Role:  RoleAgent,
		Parts: parts,
	}
}

// NewTask creates a new task in the given state.
func NewTask(id, sessionID string, state TaskState) Task {
	return Task{
		ID:        id,
		SessionID: sessionID,
		Status: TaskStatus{
			State: state,
		},
	}
}

// SetTimestamp sets the timestamp for task status.
func (ts *TaskStatus) SetTimestamp(t time.Time) {
	timestamp := t.Format(time.RFC3339)
	ts.Timestamp = &timestamp
}

// GetTimestamp parses and returns the timestamp.
func (ts *TaskStatus) GetTimestamp() (*time.Time, error) {
	if ts.Timestamp == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *ts.Timestamp)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UserText extracts the concatenated text of all text parts of a user
// message. Agents consume task input through this.
func (m *Message) UserText() string {
	var sb strings.Builder
	for _, part := range m.Parts {
		if part.Type == PartTypeText {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// NewJSONRPCError creates a new JSON-RPC error with the specified code and optional data
func NewJSONRPCError(code int, data interface{}) *JSONRPCError {
	return &JSONRPCError{
		Code:    code,
		Message: ErrorCodeText(code),
		Data:    data,
	}
}

// NewJSONRPCErrorWithMessage creates a new JSON-RPC error with a custom message
func NewJSONRPCErrorWithMessage(code int, message string, data interface{}) *JSONRPCError {
	return &JSONRPCError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewJSONRPCInternalError(message string, data interface{}) *JSONRPCError {
	return NewJSONRPCErrorWithMessage(ErrorCodeInternalError, message, data)
}

func NewJSONRPCInvalidParamsError(message string) *JSONRPCError {
	return NewJSONRPCErrorWithMessage(ErrorCodeInvalidParams, message, nil)
}

func NewJSONRPCTaskNotFoundError(taskID string) *JSONRPCError {
	return NewJSONRPCError(ErrorCodeTaskNotFound, map[string]string{"taskId": taskID})
}

func NewJSONRPCMethodNotFoundError(method string) *JSONRPCError {
	return NewJSONRPCError(ErrorCodeMethodNotFound, map[string]string{"method": method})
}

// NewJSONRPCRequest creates a new JSON-RPC request.
func NewJSONRPCRequest(method string, params interface{}, id interface{}) JSONRPCRequest {
	return JSONRPCRequest{
		JSONRpc: "2.0",
		Method:  method,
		Params:  params,
		ID:      id,
	}
}

// NewJSONRPCResponse creates a new JSON-RPC success response.
func NewJSONRPCResponse(result interface{}, id interface{}) JSONRPCResponse {
	return JSONRPCResponse{
		JSONRpc: "2.0",
		Result:  result,
		ID:      id,
	}
}

// NewJSONRPCErrorResponse creates a new JSON-RPC error response.
func NewJSONRPCErrorResponse(code int, message string, data interface{}, id interface{}) JSONRPCResponse {
	return JSONRPCResponse{
		JSONRpc: "2.0",
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}

// Predefined error responses

// NewParseError creates a parse error response.
func NewParseError(id interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeParseError, ErrorCodeText(ErrorCodeParseError), nil, id)
}

// NewInvalidRequestError creates an invalid request error response.
func NewInvalidRequestError(id interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeInvalidRequest, ErrorCodeText(ErrorCodeInvalidRequest), nil, id)
}

// NewMethodNotFoundError creates a method not found error response.
func NewMethodNotFoundError(id interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeMethodNotFound, ErrorCodeText(ErrorCodeMethodNotFound), nil, id)
}

// NewInvalidParamsError creates an invalid parameters error response.
func NewInvalidParamsError(id interface{}, data interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeInvalidParams, ErrorCodeText(ErrorCodeInvalidParams), data, id)
}

// NewInternalError creates an internal error response.
func NewInternalError(id interface{}, data interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeInternalError, ErrorCodeText(ErrorCodeInternalError), data, id)
}

// NewTaskNotFoundError creates a task not found error response.
func NewTaskNotFoundError(id interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeTaskNotFound, ErrorCodeText(ErrorCodeTaskNotFound), nil, id)
}

// NewTaskNotCancelableError creates a task not cancelable error response.
func NewTaskNotCancelableError(id interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeTaskNotCancelable, ErrorCodeText(ErrorCodeTaskNotCancelable), nil, id)
}

// NewIncompatibleTypesError creates a content-type-not-supported error response.
func NewIncompatibleTypesError(id interface{}, data interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeContentTypeNotSupported, ErrorCodeText(ErrorCodeContentTypeNotSupported), data, id)
}

// NewUnsupportedOperationError creates an unsupported operation error response.
func NewUnsupportedOperationError(id interface{}) JSONRPCResponse {
	return NewJSONRPCErrorResponse(ErrorCodeUnsupportedOperation, ErrorCodeText(ErrorCodeUnsupportedOperation), nil, id)
}
