// Package failsoft wraps an embedding service so failures degrade to zero
// vectors instead of errors. A zero vector scores zero against every stored
// embedding, so a degraded query falls back to pure keyword ranking and a
// degraded ingest keeps the chunk text searchable.
package failsoft

import (
	"context"
	"strings"

	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService decorates another embedding service with fail-soft
// behaviour. Empty or whitespace-only input returns a zero vector without
// calling the underlying service at all.
type EmbeddingService struct {
	inner driven.EmbeddingService
}

// Wrap decorates the given embedding service.
func Wrap(inner driven.EmbeddingService) *EmbeddingService {
	return &EmbeddingService{inner: inner}
}

// Embed returns the inner service's embedding, or a zero vector when the
// input is empty or whitespace-only or the inner service fails.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return s.zeroVector(), nil
	}

	embedding, err := s.inner.Embed(ctx, text)
	if err != nil {
		logger.Warn("Embedding failed, degrading to zero vector: %v", err)
		return s.zeroVector(), nil
	}
	return embedding, nil
}

// EmbedBatch embeds each text individually so one failure degrades only its
// own entry.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the inner service's embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Ping reports the inner service's reachability. Degradation does not hide
// outages from health checks.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the inner service's resources.
func (s *EmbeddingService) Close() error {
	return s.inner.Close()
}

func (s *EmbeddingService) zeroVector() []float32 {
	return make([]float32, s.inner.Dimensions())
}
