package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
	"github.com/blackink-studio/inkwell/internal/logger"
)

var _ driving.Ingestor = (*IngestOrchestrator)(nil)

// IngestOrchestrator runs the fetch, process, chunk, embed and store stages
// of the knowledge-base pipeline. Embedding failures are absorbed per chunk
// (the record is stored with a zero vector and counted in the report);
// failures in the other stages abort the run with the stage recorded.
type IngestOrchestrator struct {
	source   driven.DocumentSource
	pipeline driven.PostProcessorPipeline
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewIngestOrchestrator creates a new ingest orchestrator.
func NewIngestOrchestrator(
	source driven.DocumentSource,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		source:   source,
		pipeline: pipeline,
		embedder: embedder,
		store:    store,
	}
}

// Ingest fetches documents from the configured source and runs the full
// pipeline over them.
func (o *IngestOrchestrator) Ingest(ctx context.Context) (*domain.IngestReport, error) {
	report := &domain.IngestReport{}

	if o.source == nil {
		report.FailedStage = domain.StageFetch
		return report, domain.ErrSourceUnavailable
	}

	logger.Section("Ingest: " + o.source.Name())

	docs, err := o.source.Fetch(ctx)
	if err != nil {
		report.FailedStage = domain.StageFetch
		return report, fmt.Errorf("fetch documents: %w", err)
	}
	logger.Info("Fetched %d documents from %s", len(docs), o.source.Name())

	return o.IngestDocuments(ctx, docs)
}

// IngestDocuments runs processing, chunking, embedding and storage over the
// given documents. The report is non-nil even when an error is returned.
func (o *IngestOrchestrator) IngestDocuments(
	ctx context.Context, docs []domain.Document,
) (*domain.IngestReport, error) {
	report := &domain.IngestReport{Documents: len(docs)}

	var records []domain.VectorRecord
	for i := range docs {
		doc := &docs[i]

		chunks, err := o.pipeline.Process(ctx, doc)
		if err != nil {
			report.FailedStage = domain.StageChunk
			return report, fmt.Errorf("process document %q: %w", doc.Title, err)
		}
		report.Chunks += len(chunks)
		logger.Debug("Document %q: %d chunks", doc.Title, len(chunks))

		for idx, chunk := range chunks {
			embedding, err := o.embedder.Embed(ctx, chunk.Content)
			if err != nil {
				// The failsoft embedder never returns an error; a raw
				// embedder might. Either way the chunk is kept with a
				// zero vector so the text remains searchable by keyword.
				logger.Warn("Embedding failed for chunk %d of %q: %v", idx, doc.Title, err)
				embedding = make([]float32, o.embedder.Dimensions())
			}
			if chunk.Content != "" && isZeroVector(embedding) {
				report.EmbeddingFailures++
			}

			records = append(records, domain.VectorRecord{
				ID:         "chunk-" + uuid.NewString(),
				Embedding:  embedding,
				Metadata:   chunk.Metadata,
				Text:       domain.TruncateStoredText(chunk.Content),
				ChunkIndex: idx,
			})
		}
	}

	if len(records) > 0 {
		if err := o.store.Upsert(ctx, records); err != nil {
			report.FailedStage = domain.StageStore
			return report, fmt.Errorf("store vectors: %w", err)
		}
	}
	report.Stored = len(records)

	logger.Info("Ingest complete: %d documents, %d chunks, %d embedding failures",
		report.Documents, report.Chunks, report.EmbeddingFailures)

	return report, nil
}

func isZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return len(v) > 0
}
