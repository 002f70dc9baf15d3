package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/logger"
)

var _ driven.PromptStoreAware = (*ClientMemoryService)(nil)

// memoryRecallQuery is the fixed search query used to pull a client's
// stored insights before a conversation.
const memoryRecallQuery = "client preferences tattoo history medical notes"

// memoryRecallLimit caps how many stored insights are recalled per client.
const memoryRecallLimit = 10

// defaultInsightPrompt extracts structured client insights from a message.
const defaultInsightPrompt = `Extract important insights from this client message:
"%s"

Format JSON:
{
  "preferences": ["style preference", "artist preference"],
  "history": ["previous tattoo info"],
  "notes": ["important observation"],
  "medical": ["allergies", "healing issues"]
}
Return ONLY JSON.`

// ClientMemoryService recalls and records per-client insights. A nil memory
// store disables the feature: recall returns an empty memory and extraction
// is a no-op, so chat works the same for studios that have not configured a
// memory backend.
type ClientMemoryService struct {
	store   driven.MemoryStore
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewClientMemoryService creates a new client memory service.
// store may be nil to disable client memory.
func NewClientMemoryService(store driven.MemoryStore, llm driven.LLMService) *ClientMemoryService {
	return &ClientMemoryService{store: store, llm: llm}
}

// SetPromptStore sets the prompt store for loading a customised insight
// extraction prompt.
func (s *ClientMemoryService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Enabled reports whether a memory backend is configured.
func (s *ClientMemoryService) Enabled() bool {
	return s.store != nil
}

// Retrieve returns the client's stored insights grouped by category.
// With no backend configured it returns an empty memory and no error.
func (s *ClientMemoryService) Retrieve(ctx context.Context, clientID string) (*domain.ClientMemory, error) {
	memory := &domain.ClientMemory{
		Preferences: []string{},
		History:     []string{},
		Notes:       []string{},
		Medical:     []string{},
	}

	if s.store == nil {
		return memory, nil
	}

	items, err := s.store.Search(ctx, clientID, memoryRecallQuery, memoryRecallLimit)
	if err != nil {
		return memory, fmt.Errorf("search client memory: %w", err)
	}

	for _, item := range items {
		switch categorizeInsight(item) {
		case domain.InsightPreference:
			memory.Preferences = append(memory.Preferences, item)
		case domain.InsightHistory:
			memory.History = append(memory.History, item)
		case domain.InsightMedical:
			memory.Medical = append(memory.Medical, item)
		default:
			memory.Notes = append(memory.Notes, item)
		}
	}

	logger.Debug("Recalled %d memories for client %s", len(items), clientID)
	return memory, nil
}

// categorizeInsight buckets a stored insight by keyword sniffing. The store
// keeps plain text, so categories are reconstructed on read rather than
// persisted.
func categorizeInsight(text string) domain.InsightCategory {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "style") || strings.Contains(lower, "like") || strings.Contains(lower, "prefer"):
		return domain.InsightPreference
	case strings.Contains(lower, "tattoo") && strings.Contains(lower, "ago"):
		return domain.InsightHistory
	case strings.Contains(lower, "allergic") || strings.Contains(lower, "skin"):
		return domain.InsightMedical
	default:
		return domain.InsightNote
	}
}

// extractedInsights mirrors the JSON shape the extraction prompt requests.
type extractedInsights struct {
	Preferences []string `json:"preferences"`
	History     []string `json:"history"`
	Notes       []string `json:"notes"`
	Medical     []string `json:"medical"`
}

// ExtractAndSave asks the LLM for insights in the client's message and
// stores each one. Parse failures and individual save failures are logged
// and swallowed; memory capture must never break the conversation.
func (s *ClientMemoryService) ExtractAndSave(ctx context.Context, clientID, message string) error {
	if s.store == nil || s.llm == nil {
		return nil
	}

	template := defaultInsightPrompt
	if s.prompts != nil {
		if custom, err := s.prompts.Load(driven.PromptInsightExtract); err == nil && custom != "" {
			template = custom
		}
	}

	reply, err := s.llm.Generate(ctx, fmt.Sprintf(template, message), driven.GenerateOptions{
		Model: intentModel,
	})
	if err != nil {
		return fmt.Errorf("extract insights: %w", err)
	}

	cleaned := strings.TrimSpace(strings.NewReplacer("```json", "", "```", "").Replace(reply))
	if cleaned == "" {
		return nil
	}

	var insights extractedInsights
	if err := json.Unmarshal([]byte(cleaned), &insights); err != nil {
		logger.Warn("Discarding unparseable insights for client %s: %v", clientID, err)
		return nil
	}

	for _, item := range flattenInsights(insights) {
		if err := s.store.Add(ctx, clientID, item); err != nil {
			logger.Warn("Failed to save insight for client %s: %v", clientID, err)
		}
	}

	return nil
}

func flattenInsights(in extractedInsights) []string {
	var out []string
	for _, group := range [][]string{in.Preferences, in.History, in.Notes, in.Medical} {
		for _, item := range group {
			if strings.TrimSpace(item) != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
