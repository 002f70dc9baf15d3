package driving

import (
	"context"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// Ingestor coordinates the document ingestion pipeline.
type Ingestor interface {
	// Ingest fetches documents from the configured source and runs them
	// through process, chunk, embed and store. The returned report is
	// non-nil even on failure and names the failed stage.
	Ingest(ctx context.Context) (*domain.IngestReport, error)

	// IngestDocuments runs the pipeline over the given documents,
	// bypassing the configured source.
	IngestDocuments(ctx context.Context, docs []domain.Document) (*domain.IngestReport, error)
}
