package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/adapters/driven/config/file"
)

func setupTestConfig(t *testing.T) func() {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	oldStore := configStore
	configStore = store
	return func() {
		configStore = oldStore
		rootCmd.SetArgs(nil)
	}
}

func TestConfigSetAndGet(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "folder.path", "/share/docs"})
	require.NoError(t, rootCmd.Execute())

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "get", "folder.path"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "/share/docs")
}

func TestConfigSet_ParsesTypes(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "chunking.size", "1500"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 1500, configStore.GetInt("chunking.size"))

	rootCmd.SetArgs([]string{"config", "set", "watch.enabled", "true"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, configStore.GetBool("watch.enabled"))
}

func TestConfigGet_MissingKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "nothing.here"})

	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigPath(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "path"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "config.toml")
}
