package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("openai.api_key", "sk-test"))
	require.NoError(t, store.Set("retriever.top_k", 5))
	require.NoError(t, store.Set("server.verbose", true))

	assert.Equal(t, "sk-test", store.GetString("openai.api_key"))
	assert.Equal(t, 5, store.GetInt("retriever.top_k"))
	assert.True(t, store.GetBool("server.verbose"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("absent")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("absent"))
	assert.Zero(t, store.GetInt("absent"))
	assert.False(t, store.GetBool("absent"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", 42))

	assert.Empty(t, store.GetString("key"))
	assert.False(t, store.GetBool("key"))
	assert.Equal(t, 42, store.GetInt("key"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("pinecone.host", "https://idx.pinecone.io"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "https://idx.pinecone.io", reopened.GetString("pinecone.host"))
}

func TestConfigStore_LoadNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	tomlContent := `[openai]
api_key = "sk-nested"
model = "gpt-4o-mini"

[memory]
backend = "sqlite"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(tomlContent), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sk-nested", store.GetString("openai.api_key"))
	assert.Equal(t, "gpt-4o-mini", store.GetString("openai.model"))
	assert.Equal(t, "sqlite", store.GetString("memory.backend"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("openai.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
