package copilot

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIDGenerator(t *testing.T) {
	g := &DefaultIDGenerator{}

	taskID := g.GenerateTaskID()
	sessionID := g.GenerateSessionID()

	parsed, err := uuid.Parse(taskID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	_, err = uuid.Parse(sessionID)
	require.NoError(t, err)

	assert.NotEqual(t, taskID, g.GenerateTaskID())
}
