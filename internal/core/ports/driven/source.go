package driven

import (
	"context"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// DocumentSource supplies knowledge-base documents for ingestion.
//
// Implementations may include:
//   - Fixture source (built-in studio documents)
//   - File source (local knowledge directory)
type DocumentSource interface {
	// Fetch returns the source's documents.
	Fetch(ctx context.Context) ([]domain.Document, error)

	// Name identifies the source for logging.
	Name() string
}

// WatchableSource is a DocumentSource that can report content changes.
// Serve mode re-ingests when a change notification arrives.
type WatchableSource interface {
	DocumentSource

	// Watch delivers a notification on the returned channel whenever the
	// source content changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
