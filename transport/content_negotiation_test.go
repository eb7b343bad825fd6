package transport

import (
	"testing"

	"github.com/workonwardfoundation/agentic-ai-career-assistant/a2a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesOutputMode(t *testing.T) {
	tests := []struct {
		name      string
		accepted  string
		supported string
		expected  bool
	}{
		{name: "exact match", accepted: "text/plain", supported: "text/plain", expected: true},
		{name: "no match", accepted: "text/plain", supported: "application/json", expected: false},
		{name: "bare wildcard", accepted: "*", supported: "text/plain", expected: true},
		{name: "full wildcard", accepted: "*/*", supported: "application/json", expected: true},
		{name: "type wildcard match", accepted: "text/*", supported: "text/plain", expected: true},
		{name: "type wildcard mismatch", accepted: "text/*", supported: "application/json", expected: false},
		{name: "bare mode exact", accepted: "text", supported: "text", expected: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesOutputMode(tt.accepted, tt.supported))
		})
	}
}

func TestFindCompatibleOutputModes(t *testing.T) {
	supported := []string{"text", "text/plain", "application/json"}

	t.Run("empty accepted means anything", func(t *testing.T) {
		modes, rpcErr := FindCompatibleOutputModes(nil, supported)
		require.Nil(t, rpcErr)
		assert.Equal(t, supported, modes)
	})

	t.Run("intersection", func(t *testing.T) {
		modes, rpcErr := FindCompatibleOutputModes([]string{"text/plain", "image/png"}, supported)
		require.Nil(t, rpcErr)
		assert.Equal(t, []string{"text/plain"}, modes)
	})

	t.Run("type wildcard", func(t *testing.T) {
		modes, rpcErr := FindCompatibleOutputModes([]string{"text/*"}, supported)
		require.Nil(t, rpcErr)
		assert.Equal(t, []string{"text", "text/plain"}, modes)
	})

	t.Run("nothing compatible", func(t *testing.T) {
		modes, rpcErr := FindCompatibleOutputModes([]string{"image/png"}, supported)
		assert.Nil(t, modes)
		require.NotNil(t, rpcErr)
		assert.Equal(t, a2a.ErrorCodeContentTypeNotSupported, rpcErr.Code)
	})
}
