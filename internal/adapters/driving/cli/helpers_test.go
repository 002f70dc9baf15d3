package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	memorystore "github.com/blackink-studio/inkwell/internal/adapters/driven/vectorstore/memory"
	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/services"
)

// stubEmbedder hashes runes into a fixed vector. Deterministic and cheap;
// related texts do not embed near each other, so tests seed the store with
// the exact query text when they need a high-similarity match.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%8] += float32(r) / 1000
	}
	return vec, nil
}

func (e stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (stubEmbedder) Dimensions() int            { return 8 }
func (stubEmbedder) ModelName() string          { return "stub" }
func (stubEmbedder) Ping(context.Context) error { return nil }
func (stubEmbedder) Close() error               { return nil }

// setupTestServices points the package services at an in-memory retrieval
// stack seeded with one pricing chunk and returns a cleanup func.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	embedder := stubEmbedder{}
	store := memorystore.NewStore()

	vec, err := embedder.Embed(context.Background(), "precio tatuaje")
	require.NoError(t, err)
	err = store.Upsert(context.Background(), []domain.VectorRecord{
		{
			ID:        "chunk-test-1",
			Embedding: vec,
			Text:      "Los tatuajes pequeños cuestan desde 80€",
			Metadata: domain.DocumentMetadata{
				Source:   "faq_system",
				Category: "pricing",
			},
		},
	})
	require.NoError(t, err)

	originalRetriever := retrieverSvc
	retrieverSvc = services.NewRetrievalService(embedder, store)

	return func() {
		retrieverSvc = originalRetriever
	}
}
