// Package mem0 provides a MemoryStore adapter using the Mem0 hosted
// memory API.
package mem0

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
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MemoryStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.mem0.ai/v1"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Mem0 memory store.
type Config struct {
	// APIKey is the Mem0 API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.mem0.ai/v1).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store persists client memories in the Mem0 service.
type Store struct {
	client  *http.Client
	limiter *ratelimit.Limiter
	baseURL string
	apiKey  string
}

type addRequest struct {
	Messages []addMessage `json:"messages"`
	UserID   string       `json:"user_id"`
}

type addMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
}

type memoryEntry struct {
	Memory string `json:"memory"`
}

// NewStore creates a new Mem0 memory store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mem0: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: ratelimit.New(ratelimit.ProviderMem0),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

// Add stores a text snippet for a client.
func (s *Store) Add(ctx context.Context, clientID, text string) error {
	_, err := s.post(ctx, "/memories/", addRequest{
		Messages: []addMessage{{Role: "user", Content: text}},
		UserID:   clientID,
	})
	return err
}

// Search returns stored snippets related to the query for a client.
func (s *Store) Search(ctx context.Context, clientID, query string, limit int) ([]string, error) {
	body, err := s.post(ctx, "/memories/search/", searchRequest{
		Query:  query,
		UserID: clientID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	entries, err := decodeEntries(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	memories := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Memory != "" {
			memories = append(memories, e.Memory)
		}
	}
	return memories, nil
}

// decodeEntries accepts both response shapes the API has used: a bare array
// and an object wrapping a results array.
func decodeEntries(body []byte) ([]memoryEntry, error) {
	var entries []memoryEntry
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}

	var wrapped struct {
		Results []memoryEntry `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Results, nil
}

func (s *Store) post(ctx context.Context, path string, reqBody any) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		s.limiter.RecordRateLimitError(retryAfter)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("mem0 error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
