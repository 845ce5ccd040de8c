package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.ConfigStore = (*ConfigStore)(nil)
}

func TestNewConfigStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestSetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyFolderPath, "/share/docs"))
	require.NoError(t, store.Set(KeyChunkSize, 1000))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "/share/docs", store.GetString(KeyFolderPath))
	assert.Equal(t, 1000, store.GetInt(KeyChunkSize))
	assert.True(t, store.GetBool("verbose"))
}

func TestGet_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestSet_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyEmbeddingModel, "nomic-embed-text"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", reloaded.GetString(KeyEmbeddingModel))
}

func TestLoad_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[embedding]
provider = "ollama"
base_url = "http://localhost:11434"

[eviction]
max_age_days = 30
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString(KeyEmbeddingProvider))
	assert.Equal(t, "http://localhost:11434", store.GetString(KeyEmbeddingBaseURL))
	assert.Equal(t, 30, store.GetInt(KeyEvictionMaxDays))
}

func TestGetStringSlice(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`extensions = ["pdf", "docx"]`), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"pdf", "docx"}, store.GetStringSlice("extensions"))
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}
