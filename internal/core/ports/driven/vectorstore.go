package driven

import (
	"context"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// MaxUpsertBatchSize is the largest number of records a store accepts in a
// single write. Adapters split larger inputs into sequential batches without
// dropping or duplicating records across batch boundaries.
const MaxUpsertBatchSize = 100

// VectorStore persists and queries vector records.
//
// Implementations may include:
//   - Pinecone (hosted, HTTP data plane)
//   - In-memory cosine store (tests, local development)
type VectorStore interface {
	// Upsert writes records to the store. Inputs larger than
	// MaxUpsertBatchSize are written as sequential batches. Records with
	// an existing id are overwritten (last write wins).
	Upsert(ctx context.Context, records []domain.VectorRecord) error

	// Query returns up to topK nearest neighbours to the vector, ordered
	// by the store's own similarity metric (descending). A query failure
	// is returned as an error; an empty result is not a failure.
	Query(ctx context.Context, vector []float32, topK int, filter domain.MetadataFilter) ([]VectorMatch, error)

	// Ping validates the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorMatch is a similarity-search candidate returned by a store.
type VectorMatch struct {
	// ID is the matched record id.
	ID string

	// Score is the store-assigned similarity (cosine-like, roughly 0-1).
	Score float64

	// Text is the stored chunk text.
	Text string

	// Source is the record's source identifier.
	Source string

	// Category is the record's category, if any.
	Category string
}
