package mcp

import (
	"context"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// mockRetriever is a mock implementation of driving.Retriever.
type mockRetriever struct {
	results  []domain.RetrievalResult
	err      error
	lastOpts domain.QueryOptions
}

func (m *mockRetriever) Search(
	_ context.Context,
	_ string,
	opts domain.QueryOptions,
) ([]domain.RetrievalResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	report      *domain.IngestReport
	err         error
	ingestCalls int
	lastDocs    []domain.Document
}

func (m *mockIngestor) Ingest(_ context.Context) (*domain.IngestReport, error) {
	m.ingestCalls++
	return m.report, m.err
}

func (m *mockIngestor) IngestDocuments(_ context.Context, docs []domain.Document) (*domain.IngestReport, error) {
	m.lastDocs = docs
	return m.report, m.err
}
