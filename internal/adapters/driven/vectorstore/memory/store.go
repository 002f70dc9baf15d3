// Package memory provides an in-memory vector store for development and
// tests. It keeps every record in process memory and ranks queries by
// cosine similarity.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is an in-memory implementation of driven.VectorStore.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.VectorRecord
}

// NewStore creates a new in-memory vector store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.VectorRecord),
	}
}

// Upsert stores or replaces records by ID.
func (s *Store) Upsert(_ context.Context, records []domain.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID] = r
	}
	return nil
}

// Query returns the topK records by cosine similarity, restricted by filter.
func (s *Store) Query(
	_ context.Context, vector []float32, topK int, filter domain.MetadataFilter,
) ([]driven.VectorMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]driven.VectorMatch, 0, len(s.records))
	for _, r := range s.records {
		if !matchesFilter(r.Metadata, filter) {
			continue
		}
		matches = append(matches, driven.VectorMatch{
			ID:       r.ID,
			Score:    cosineSimilarity(vector, r.Embedding),
			Text:     r.Text,
			Source:   r.Metadata.Source,
			Category: r.Metadata.Category,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// matchesFilter evaluates the domain filter against record metadata.
// Slice values mean one-of, scalars mean equality.
func matchesFilter(md domain.DocumentMetadata, filter domain.MetadataFilter) bool {
	for key, want := range filter {
		got := metadataValue(md, key)
		switch w := want.(type) {
		case []string:
			found := false
			for _, v := range w {
				if got == v {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case string:
			if got != w {
				return false
			}
		case int:
			if key != "priority" || md.Priority != w {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func metadataValue(md domain.DocumentMetadata, key string) string {
	switch key {
	case "source":
		return md.Source
	case "category":
		return md.Category
	case "author":
		return md.Author
	default:
		return ""
	}
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Ping always succeeds; the store is process-local.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
