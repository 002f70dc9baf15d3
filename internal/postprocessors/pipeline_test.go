package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/postprocessors/chunker"
)

// uppercaser is a trivial processor that modifies existing chunks.
type uppercaser struct{}

func (uppercaser) Name() string { return "uppercaser" }

func (uppercaser) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		chunks[i].Metadata.Tags = append(chunks[i].Metadata.Tags, "processed")
	}
	return chunks, nil
}

// failing is a processor that always errors.
type failing struct{}

func (failing) Name() string { return "failing" }

func (failing) Process(_ context.Context, _ *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	return nil, errors.New("boom")
}

func TestPipeline_Process(t *testing.T) {
	p := NewPipeline(chunker.New(), uppercaser{})

	doc := &domain.Document{Content: "Hello paragraph."}
	chunks, err := p.Process(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Metadata.Tags, "processed")
}

func TestPipeline_ProcessNilDocument(t *testing.T) {
	p := NewPipeline(chunker.New())

	_, err := p.Process(context.Background(), nil)
	assert.Error(t, err)
}

func TestPipeline_ProcessorError(t *testing.T) {
	p := NewPipeline(chunker.New(), failing{})

	_, err := p.Process(context.Background(), &domain.Document{Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	assert.Equal(t, 0, p.Len())

	p.Add(chunker.New())
	assert.Equal(t, 1, p.Len())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	require.True(t, r.Has("chunker"))
	assert.Contains(t, r.Names(), "chunker")

	proc, err := r.Build("chunker", map[string]any{"chunk_size": int64(500), "overlap": int64(50)})
	require.NoError(t, err)
	assert.Equal(t, "chunker", proc.Name())

	_, err = r.Build("stemmer", nil)
	assert.Error(t, err)

	var _ driven.PostProcessor = proc
}
