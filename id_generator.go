package copilot

import "github.com/google/uuid"

//go:generate go tool mockgen -source=id_generator.go -destination=mock_id_generator_test.go -package=copilot

// IDGenerator provides unique ID generation for A2A entities
type IDGenerator interface {
	// GenerateTaskID generates a unique task identifier
	GenerateTaskID() string
	// GenerateSessionID generates a unique session identifier
	GenerateSessionID() string
}

// DefaultIDGenerator implements IDGenerator using UUID v7
type DefaultIDGenerator struct{}

// GenerateTaskID generates a task ID using UUID v7
func (g *DefaultIDGenerator) GenerateTaskID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateSessionID generates a session ID using UUID v7
func (g *DefaultIDGenerator) GenerateSessionID() string {
	return uuid.Must(uuid.NewV7()).String()
}
