package msg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessage_ReplacesPlaceholders(t *testing.T) {
	Load(map[string]string{"test.greeting": "Chuva em {0} no dia {1} ({2})"})

	got := GetMessage("test.greeting", "Salvador", "2024-06-13", 3)

	assert.Equal(t, "Chuva em Salvador no dia 2024-06-13 (3)", got)
}

func TestGetMessage_MissingKey(t *testing.T) {
	assert.Equal(t, "Message not found: test.absent", GetMessage("test.absent"))
	assert.False(t, Has("test.absent"))
}

func TestGetMessage_NonPrimitiveArgs(t *testing.T) {
	Load(map[string]string{"test.payload": "payload={0} err={1}"})

	got := GetMessage("test.payload", map[string]int{"a": 1}, errors.New("boom"))

	assert.Equal(t, `payload={"a":1} err=boom`, got)
}

func TestInit_ReadsNestedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yml")
	content := "forecast:\n  task:\n    name: \"Tarefa {0}\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, Init(path))

	assert.True(t, Has("forecast.task.name"))
	assert.Equal(t, "Tarefa Sul", GetMessage("forecast.task.name", "Sul"))
}
