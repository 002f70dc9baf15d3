package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
)

func TestPromptStore_LoadCreatesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptIntentClassify)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Clasifica el siguiente mensaje")

	// Default files are written on first access.
	for _, name := range []string{
		driven.PromptIntentClassify,
		driven.PromptInsightExtract,
		driven.PromptChatConstraints,
	} {
		_, err := os.Stat(filepath.Join(tmpDir, name+".txt"))
		assert.NoError(t, err, "expected default file for %s", name)
	}
	_, err = os.Stat(filepath.Join(tmpDir, "README.md"))
	assert.NoError(t, err)
}

func TestPromptStore_ConstructorDoesNoIO(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "lazy")

	_, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	_, err = os.Stat(tmpDir)
	assert.True(t, os.IsNotExist(err), "constructor must not create the directory")
}

func TestPromptStore_CustomFileOverridesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	custom := "Categoría para: %s"
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpDir, driven.PromptIntentClassify+".txt"),
		[]byte(custom+"\n"), 0600,
	))

	store, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptIntentClassify)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent")
	require.Error(t, err)
}

func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptChatConstraints)
	require.NoError(t, err)

	edited := "- Responde siempre en inglés"
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpDir, driven.PromptChatConstraints+".txt"),
		[]byte(edited), 0600,
	))

	// Cached value until Reload.
	prompt, err := store.Load(driven.PromptChatConstraints)
	require.NoError(t, err)
	assert.NotEqual(t, edited, prompt)

	store.Reload()
	prompt, err = store.Load(driven.PromptChatConstraints)
	require.NoError(t, err)
	assert.Equal(t, edited, prompt)
}
