// Package pinecone provides a vector store adapter using the Pinecone
// data-plane REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/blackink-studio/inkwell/internal/adapters/driven/ratelimit"
	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultTimeout is the request timeout.
const DefaultTimeout = 60 * time.Second

// Config holds configuration for the Pinecone vector store.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// Host is the index host URL, e.g.
	// https://black-ink-abc123.svc.us-east-1.pinecone.io (required).
	Host string

	// Namespace scopes all operations; empty uses the default namespace.
	Namespace string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Store persists and queries vectors in a Pinecone index.
type Store struct {
	client    *http.Client
	limiter   *ratelimit.Limiter
	host      string
	apiKey    string
	namespace string
}

type upsertVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors   []upsertVector `json:"vectors"`
	Namespace string         `json:"namespace,omitempty"`
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Filter          map[string]any `json:"filter,omitempty"`
	Namespace       string         `json:"namespace,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// NewStore creates a new Pinecone vector store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: index host is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:   ratelimit.New(ratelimit.ProviderPinecone),
		host:      cfg.Host,
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
	}, nil
}

// Upsert writes records in batches of at most MaxUpsertBatchSize vectors.
// Batches are sent sequentially; a failure aborts the remaining batches.
func (s *Store) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	for start := 0; start < len(records); start += driven.MaxUpsertBatchSize {
		end := start + driven.MaxUpsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		vectors := make([]upsertVector, len(batch))
		for i, r := range batch {
			vectors[i] = upsertVector{
				ID:       r.ID,
				Values:   r.Embedding,
				Metadata: recordMetadata(r),
			}
		}

		if err := s.post(ctx, "/vectors/upsert", upsertRequest{
			Vectors:   vectors,
			Namespace: s.namespace,
		}, nil); err != nil {
			return fmt.Errorf("upsert batch at offset %d: %w", start, err)
		}
		logger.Debug("Upserted batch of %d vectors", len(batch))
	}
	return nil
}

// Query returns the topK nearest vectors, optionally restricted by filter.
func (s *Store) Query(
	ctx context.Context, vector []float32, topK int, filter domain.MetadataFilter,
) ([]driven.VectorMatch, error) {
	var resp queryResponse
	err := s.post(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		Filter:          buildFilter(filter),
		Namespace:       s.namespace,
		IncludeMetadata: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	matches := make([]driven.VectorMatch, len(resp.Matches))
	for i, m := range resp.Matches {
		matches[i] = driven.VectorMatch{
			ID:       m.ID,
			Score:    m.Score,
			Text:     metadataString(m.Metadata, "text"),
			Source:   metadataString(m.Metadata, "source"),
			Category: metadataString(m.Metadata, "category"),
		}
	}
	return matches, nil
}

// recordMetadata flattens a record into the Pinecone metadata map. The
// chunk text rides along so query results carry content without a second
// lookup.
func recordMetadata(r domain.VectorRecord) map[string]any {
	md := map[string]any{
		"text":       r.Text,
		"chunkIndex": r.ChunkIndex,
	}
	if r.Metadata.Source != "" {
		md["source"] = r.Metadata.Source
	}
	if r.Metadata.Category != "" {
		md["category"] = r.Metadata.Category
	}
	if r.Metadata.Priority != 0 {
		md["priority"] = r.Metadata.Priority
	}
	if !r.Metadata.LastUpdated.IsZero() {
		md["lastUpdated"] = r.Metadata.LastUpdated.Format(time.RFC3339)
	}
	if r.Metadata.Author != "" {
		md["author"] = r.Metadata.Author
	}
	if len(r.Metadata.Tags) > 0 {
		md["tags"] = r.Metadata.Tags
	}
	return md
}

// buildFilter converts the domain filter into Pinecone filter syntax:
// slice values become $in clauses, scalars become $eq.
func buildFilter(filter domain.MetadataFilter) map[string]any {
	if len(filter) == 0 {
		return nil
	}

	out := make(map[string]any, len(filter))
	for key, value := range filter {
		switch v := value.(type) {
		case []string:
			vals := make([]any, len(v))
			for i, s := range v {
				vals[i] = s
			}
			out[key] = map[string]any{"$in": vals}
		case []any:
			out[key] = map[string]any{"$in": v}
		default:
			out[key] = map[string]any{"$eq": v}
		}
	}
	return out
}

func metadataString(md map[string]any, key string) string {
	if v, ok := md[key].(string); ok {
		return v
	}
	return ""
}

func (s *Store) post(ctx context.Context, path string, reqBody any, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.host+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		s.limiter.RecordRateLimitError(retryAfter)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Ping validates connectivity with a zero-vector stats request.
func (s *Store) Ping(ctx context.Context) error {
	return s.post(ctx, "/describe_index_stats", map[string]any{}, nil)
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
