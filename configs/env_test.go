package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSecrets(t *testing.T) {
	t.Setenv("ASANA_TOKEN", "token")
	t.Setenv("OPENWEATHER_KEY", "key")
	t.Setenv("PROJECT_ID", "p-1")
	t.Setenv("SECTION_ID", "")

	secrets, err := LoadSecrets()

	require.NoError(t, err)
	assert.Equal(t, &Secrets{AsanaToken: "token", OpenWeatherKey: "key", ProjectID: "p-1"}, secrets)
}

func TestLoadSecrets_RequiresToken(t *testing.T) {
	t.Setenv("ASANA_TOKEN", "")
	require.NoError(t, os.Unsetenv("ASANA_TOKEN"))
	t.Setenv("OPENWEATHER_KEY", "key")
	t.Setenv("PROJECT_ID", "p-1")

	_, err := LoadSecrets()

	assert.ErrorContains(t, err, "ASANA_TOKEN")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("RAINWATCH_DOTENV_PROBE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("RAINWATCH_DOTENV_PROBE") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("RAINWATCH_DOTENV_PROBE"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
