package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{"keys", "refs", "storage"}, Topics())
}

func TestGet(t *testing.T) {
	body, ok := Get(" Keys ")
	require.True(t, ok)
	assert.Contains(t, body, "# TUI keys")

	_, ok = Get("missing")
	assert.False(t, ok)
	_, ok = Get("../docs")
	assert.False(t, ok)
}
