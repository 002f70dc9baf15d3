package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

func TestNewStore_Validation(t *testing.T) {
	_, err := NewStore(Config{Host: "https://idx.pinecone.io"})
	require.Error(t, err)

	_, err = NewStore(Config{APIKey: "pc-key"})
	require.Error(t, err)

	store, err := NewStore(Config{APIKey: "pc-key", Host: "https://idx.pinecone.io"})
	require.NoError(t, err)
	require.NotNil(t, store)
}

func TestUpsert_Batching(t *testing.T) {
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vectors/upsert", r.URL.Path)
		require.Equal(t, "pc-key", r.Header.Get("Api-Key"))

		var req upsertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batchSizes = append(batchSizes, len(req.Vectors))
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "pc-key", Host: server.URL})
	require.NoError(t, err)

	records := make([]domain.VectorRecord, 250)
	for i := range records {
		records[i] = domain.VectorRecord{
			ID:        "chunk-" + string(rune('a'+i%26)),
			Embedding: []float32{0.1, 0.2},
			Text:      "contenido",
		}
	}

	require.NoError(t, store.Upsert(context.Background(), records))
	assert.Equal(t, []int{100, 100, 50}, batchSizes)
}

func TestUpsert_MetadataShape(t *testing.T) {
	var req upsertRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "pc-key", Host: server.URL, Namespace: "studio"})
	require.NoError(t, err)

	err = store.Upsert(context.Background(), []domain.VectorRecord{{
		ID:        "chunk-1",
		Embedding: []float32{1, 2},
		Text:      "El precio base es $150",
		Metadata: domain.DocumentMetadata{
			Source:   "faq.md",
			Category: "pricing",
			Priority: 5,
		},
		ChunkIndex: 3,
	}})
	require.NoError(t, err)

	assert.Equal(t, "studio", req.Namespace)
	require.Len(t, req.Vectors, 1)
	md := req.Vectors[0].Metadata
	assert.Equal(t, "El precio base es $150", md["text"])
	assert.Equal(t, "faq.md", md["source"])
	assert.Equal(t, "pricing", md["category"])
	assert.EqualValues(t, 5, md["priority"])
	assert.EqualValues(t, 3, md["chunkIndex"])
}

func TestQuery(t *testing.T) {
	var req queryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{
					"id":    "chunk-1",
					"score": 0.92,
					"metadata": map[string]any{
						"text":     "El precio base es $150",
						"source":   "faq.md",
						"category": "pricing",
					},
				},
			},
		})
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "pc-key", Host: server.URL})
	require.NoError(t, err)

	matches, err := store.Query(context.Background(), []float32{0.5, 0.5}, 8, domain.MetadataFilter{
		"category": []string{"pricing", "services"},
		"priority": 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, req.TopK)
	assert.True(t, req.IncludeMetadata)
	assert.Equal(t, map[string]any{
		"category": map[string]any{"$in": []any{"pricing", "services"}},
		"priority": map[string]any{"$eq": float64(4)},
	}, req.Filter)

	require.Len(t, matches, 1)
	assert.Equal(t, "chunk-1", matches[0].ID)
	assert.InDelta(t, 0.92, matches[0].Score, 1e-9)
	assert.Equal(t, "El precio base es $150", matches[0].Text)
	assert.Equal(t, "faq.md", matches[0].Source)
	assert.Equal(t, "pricing", matches[0].Category)
}

func TestQuery_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{"message": "invalid api key", "code": 3})
	}))
	defer server.Close()

	store, err := NewStore(Config{APIKey: "pc-bad", Host: server.URL})
	require.NoError(t, err)

	_, err = store.Query(context.Background(), []float32{1}, 5, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestBuildFilter(t *testing.T) {
	assert.Nil(t, buildFilter(nil))
	assert.Nil(t, buildFilter(domain.MetadataFilter{}))

	got := buildFilter(domain.MetadataFilter{
		"source":   "care",
		"category": []string{"booking", "pricing"},
	})
	assert.Equal(t, map[string]any{
		"source":   map[string]any{"$eq": "care"},
		"category": map[string]any{"$in": []any{"booking", "pricing"}},
	}, got)
}
