package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID(t *testing.T) {
	seen := make(map[string]struct{})

	for range 100 {
		id, err := SessionID()
		require.NoError(t, err)
		require.True(t, IsValidSessionID(id), id)

		_, dup := seen[id]
		require.False(t, dup, "duplicate session id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsValidSessionID(t *testing.T) {
	assert.False(t, IsValidSessionID(""))
	assert.False(t, IsValidSessionID("short"))
	assert.False(t, IsValidSessionID("0123456789abcdef0123456789abcde!"))
	assert.True(t, IsValidSessionID("0123456789abcdef0123456789ABCDEF"))
}

func TestMessageID(t *testing.T) {
	id := MessageID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}
