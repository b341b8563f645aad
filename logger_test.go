package cocktails

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileInvocationLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileInvocationLogger(&buf)

	require.NoError(t, logger.LogInvocation(InvocationLog{ID: "1", Tool: "get-recipe", Timestamp: time.Now()}))
	require.NoError(t, logger.LogInvocation(InvocationLog{ID: "2", Tool: "list-recipes", IsError: true, Error: "boom"}))
	assert.Zero(t, buf.Len(), "nothing is written before Flush")

	require.NoError(t, logger.Flush())

	var out struct {
		Session struct {
			Invocations []InvocationLog `json:"invocations"`
		} `json:"server_session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Session.Invocations, 2)
	assert.Equal(t, "get-recipe", out.Session.Invocations[0].Tool)
	assert.Equal(t, "boom", out.Session.Invocations[1].Error)

	t.Run("nil writer", func(t *testing.T) {
		assert.NoError(t, NewFileInvocationLogger(nil).Flush())
	})
}

func TestStdoutInvocationLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdoutInvocationLogger{w: &buf}

	require.NoError(t, logger.LogInvocation(InvocationLog{ID: "a", Tool: "get-recipe"}))
	require.NoError(t, logger.LogInvocation(InvocationLog{ID: "b", Tool: "list-recipes"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first InvocationLog
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "a", first.ID)
}

func TestNewInvocationLogFilePath(t *testing.T) {
	path := NewInvocationLogFilePath("Cocktail:Recipes")
	assert.True(t, strings.HasPrefix(path, "./logs/"))
	assert.True(t, strings.HasSuffix(path, ".cocktail_recipes.json"))
}

func TestNewInvocationLogger(t *testing.T) {
	logger, cleanup, err := NewInvocationLogger("none", "svc")
	require.NoError(t, err)
	assert.IsType(t, &NoOpInvocationLogger{}, logger)
	assert.NoError(t, cleanup())

	logger, cleanup, err = NewInvocationLogger("stdout", "svc")
	require.NoError(t, err)
	assert.IsType(t, &StdoutInvocationLogger{}, logger)
	assert.NoError(t, cleanup())
}
