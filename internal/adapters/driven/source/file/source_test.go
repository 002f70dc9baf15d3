package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewSource_RequiresDirectory(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain.txt")
	writeFile(t, file, "not a dir")
	_, err = NewSource(file)
	require.Error(t, err)
}

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "care", "aftercare.md"), "Lava con jabón neutro.")
	writeFile(t, filepath.Join(dir, "faq", "precios.txt"), "El precio mínimo es $150.")
	writeFile(t, filepath.Join(dir, "notas.md"), "Notas sueltas del estudio.")
	writeFile(t, filepath.Join(dir, "ignored.json"), "{}")
	writeFile(t, filepath.Join(dir, ".drafts", "borrador.md"), "no publicado")

	source, err := NewSource(dir)
	require.NoError(t, err)

	docs, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	byTitle := map[string]domain.Document{}
	for _, d := range docs {
		byTitle[d.Title] = d
	}

	care := byTitle["aftercare"]
	assert.Equal(t, domain.DocumentTypeCare, care.Type)
	assert.Equal(t, "care", care.Metadata.Category)
	assert.Equal(t, filepath.Join("care", "aftercare.md"), care.Metadata.Source)
	assert.Equal(t, "Lava con jabón neutro.", care.Content)

	faq := byTitle["precios"]
	assert.Equal(t, domain.DocumentTypeFAQ, faq.Type)
	assert.Equal(t, "faq", faq.Metadata.Category)

	// Root-level files have no category and default to blog.
	root := byTitle["notas"]
	assert.Equal(t, domain.DocumentTypeBlog, root.Type)
	assert.Empty(t, root.Metadata.Category)
}

func TestWatch_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "faq", "precios.md"), "inicial")

	source, err := NewSource(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := source.Watch(ctx)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "faq", "precios.md"), "actualizado")

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatch_ChannelClosesOnCancel(t *testing.T) {
	source, err := NewSource(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := source.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(3 * time.Second):
		t.Fatal("expected channel to close")
	}
}
