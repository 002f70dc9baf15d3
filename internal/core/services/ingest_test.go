package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

type mockSource struct {
	docs []domain.Document
	err  error
}

func (m *mockSource) Fetch(ctx context.Context) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockSource) Name() string { return "mock-source" }

type mockPipeline struct {
	err error
}

func (m *mockPipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	// One chunk per paragraph, enough to exercise the orchestration.
	var chunks []domain.Chunk
	for _, para := range strings.Split(doc.Content, "\n\n") {
		chunks = append(chunks, domain.Chunk{
			Content:        para,
			Metadata:       doc.Metadata,
			Tokens:         (len(para) + 3) / 4,
			OriginalLength: len(doc.Content),
		})
	}
	return chunks, nil
}

type failingEmbedder struct {
	mockEmbedder
	failOn map[string]bool
}

func (f *failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failOn[text] {
		// Failsoft behaviour: zero vector, no error.
		return make([]float32, 8), nil
	}
	return []float32{1, 0, 0, 0, 0, 0, 0, 0}, nil
}

func testDocs() []domain.Document {
	return []domain.Document{
		{
			Type:     domain.DocumentTypeFAQ,
			Title:    "Preguntas Frecuentes",
			Content:  "El precio base es $150.\n\nTrabajamos con cita previa.",
			Metadata: domain.DocumentMetadata{Source: "faq.md", Category: "faq"},
		},
		{
			Type:     domain.DocumentTypeCare,
			Title:    "Guía de Cuidados",
			Content:  "Lava el tatuaje con jabón neutro.",
			Metadata: domain.DocumentMetadata{Source: "care.md", Category: "care"},
		},
	}
}

func TestIngestOrchestrator_FullRun(t *testing.T) {
	embedder := &failingEmbedder{}
	store := &mockVectorStore{}
	orch := NewIngestOrchestrator(&mockSource{docs: testDocs()}, &mockPipeline{}, embedder, store)

	report, err := orch.Ingest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, 3, report.Chunks)
	assert.Equal(t, 3, report.Stored)
	assert.Equal(t, 0, report.EmbeddingFailures)
	assert.Empty(t, report.FailedStage)

	require.Len(t, store.upserted, 1)
	records := store.upserted[0]
	require.Len(t, records, 3)
	for _, r := range records {
		assert.True(t, strings.HasPrefix(r.ID, "chunk-"), "record id %q", r.ID)
		assert.NotEmpty(t, r.Text)
	}
	// Chunk index restarts per document.
	assert.Equal(t, 0, records[0].ChunkIndex)
	assert.Equal(t, 1, records[1].ChunkIndex)
	assert.Equal(t, 0, records[2].ChunkIndex)
}

func TestIngestOrchestrator_RecordIDsUnique(t *testing.T) {
	store := &mockVectorStore{}
	orch := NewIngestOrchestrator(&mockSource{docs: testDocs()}, &mockPipeline{}, &failingEmbedder{}, store)

	_, err := orch.Ingest(context.Background())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range store.upserted[0] {
		assert.False(t, seen[r.ID], "duplicate record id %q", r.ID)
		seen[r.ID] = true
	}
}

func TestIngestOrchestrator_CountsEmbeddingFailures(t *testing.T) {
	embedder := &failingEmbedder{failOn: map[string]bool{
		"Trabajamos con cita previa.": true,
	}}
	store := &mockVectorStore{}
	orch := NewIngestOrchestrator(&mockSource{docs: testDocs()}, &mockPipeline{}, embedder, store)

	report, err := orch.Ingest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.EmbeddingFailures)
	// The failed chunk is still stored.
	assert.Equal(t, 3, report.Stored)
}

func TestIngestOrchestrator_FetchFailure(t *testing.T) {
	orch := NewIngestOrchestrator(
		&mockSource{err: errors.New("connector down")},
		&mockPipeline{}, &failingEmbedder{}, &mockVectorStore{},
	)

	report, err := orch.Ingest(context.Background())
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, domain.StageFetch, report.FailedStage)
}

func TestIngestOrchestrator_ChunkFailure(t *testing.T) {
	orch := NewIngestOrchestrator(
		&mockSource{docs: testDocs()},
		&mockPipeline{err: errors.New("processor broke")},
		&failingEmbedder{}, &mockVectorStore{},
	)

	report, err := orch.Ingest(context.Background())
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, domain.StageChunk, report.FailedStage)
}

func TestIngestOrchestrator_StoreFailure(t *testing.T) {
	store := &mockVectorStore{upsertErr: errors.New("upsert rejected")}
	orch := NewIngestOrchestrator(&mockSource{docs: testDocs()}, &mockPipeline{}, &failingEmbedder{}, store)

	report, err := orch.Ingest(context.Background())
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, domain.StageStore, report.FailedStage)
	assert.Equal(t, 0, report.Stored)
}

func TestIngestOrchestrator_StoredTextTruncated(t *testing.T) {
	long := strings.Repeat("x", domain.MaxStoredTextLength+500)
	docs := []domain.Document{{
		Type:    domain.DocumentTypeBlog,
		Title:   "Artículo largo",
		Content: long,
	}}
	store := &mockVectorStore{}
	orch := NewIngestOrchestrator(&mockSource{docs: docs}, &mockPipeline{}, &failingEmbedder{}, store)

	_, err := orch.Ingest(context.Background())
	require.NoError(t, err)

	require.Len(t, store.upserted[0], 1)
	assert.Len(t, store.upserted[0][0].Text, domain.MaxStoredTextLength)
}
