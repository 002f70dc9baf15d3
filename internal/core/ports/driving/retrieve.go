package driving

import (
	"context"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// Retriever exposes knowledge-base retrieval to external actors.
type Retriever interface {
	// Search runs the query pipeline: embed, similarity search, hybrid
	// rank, truncate. An empty or whitespace-only query returns an empty
	// list without touching any external service; it never fails.
	Search(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.RetrievalResult, error)
}
