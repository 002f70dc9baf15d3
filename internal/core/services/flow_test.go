package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackink-studio/inkwell/internal/adapters/driven/source/fixture"
	memorystore "github.com/blackink-studio/inkwell/internal/adapters/driven/vectorstore/memory"
	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/postprocessors"
	"github.com/blackink-studio/inkwell/internal/postprocessors/chunker"
)

// constEmbedder maps every text to the same vector, so similarity is 1.0
// for all candidates and ranking is decided by keyword overlap alone.
type constEmbedder struct{}

func (constEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0, 0}, nil
}

func (e constEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, nil
}

func (constEmbedder) Dimensions() int            { return 4 }
func (constEmbedder) ModelName() string          { return "const" }
func (constEmbedder) Ping(context.Context) error { return nil }
func (constEmbedder) Close() error               { return nil }

// Runs the full pipeline over the built-in studio documents and queries the
// result, using only in-process adapters.
func TestIngestAndSearchFlow(t *testing.T) {
	ctx := context.Background()

	source := fixture.NewSource()
	pipeline := postprocessors.NewPipeline(chunker.New())
	embedder := constEmbedder{}
	store := memorystore.NewStore()

	ingest := NewIngestOrchestrator(source, pipeline, embedder, store)

	report, err := ingest.Ingest(ctx)
	require.NoError(t, err)

	// Each built-in document fits in a single chunk.
	assert.Equal(t, 4, report.Documents)
	assert.Equal(t, 4, report.Chunks)
	assert.Equal(t, 4, report.Stored)
	assert.Zero(t, report.EmbeddingFailures)
	assert.Equal(t, 4, store.Len())

	retriever := NewRetrievalService(embedder, store)

	t.Run("pricing question ranks the FAQ first", func(t *testing.T) {
		results, err := retriever.Search(ctx, "precio tatuaje", domain.QueryOptions{TopK: 3})
		require.NoError(t, err)
		require.NotEmpty(t, results)

		assert.Equal(t, "faq_system", results[0].Source)
		assert.Contains(t, strings.ToLower(results[0].Content), "precio")
	})

	t.Run("short documents are stored whole", func(t *testing.T) {
		results, err := retriever.Search(ctx, "cuesta", domain.QueryOptions{
			TopK:   1,
			Filter: domain.MetadataFilter{"category": "pricing"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)

		docs, err := source.Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, docs[0].Content, results[0].Content)
	})

	t.Run("category filter narrows to aftercare", func(t *testing.T) {
		results, err := retriever.Search(ctx, "cuidados vendaje", domain.QueryOptions{
			TopK:   5,
			Filter: domain.MetadataFilter{"category": "care"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "care_guide", results[0].Source)
	})

	t.Run("empty query returns nothing without error", func(t *testing.T) {
		results, err := retriever.Search(ctx, "   ", domain.QueryOptions{TopK: 5})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
