package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
	"github.com/blackink-studio/inkwell/internal/logger"
)

var (
	_ driving.ChatService     = (*ChatOrchestrator)(nil)
	_ driven.PromptStoreAware = (*ChatOrchestrator)(nil)
)

// AnonymousClientID is used when a chat request carries no client id.
const AnonymousClientID = "anonymous_visitor"

// defaultConstraintsPrompt is appended to every agent system prompt.
const defaultConstraintsPrompt = `- SIEMPRE cita tus fuentes si usas la Base de Conocimiento
- No inventes información
- Si no sabes: "No encuentro esta información, déjame conectarte con nuestro equipo"
- Respuestas máximo 3 párrafos
- Sé conciso y profesional, tono Premium/Elegante`

// ChatOrchestrator handles a chat turn end to end: intent routing, client
// memory recall, knowledge retrieval, prompt assembly and streamed
// generation. Memory failures degrade to an empty client context; retrieval
// and generation failures abort the turn.
type ChatOrchestrator struct {
	router    *IntentRouter
	retriever driving.Retriever
	memory    *ClientMemoryService
	llm       driven.LLMService
	prompts   driven.PromptStore
}

// NewChatOrchestrator creates a new chat orchestrator.
func NewChatOrchestrator(
	router *IntentRouter,
	retriever driving.Retriever,
	memory *ClientMemoryService,
	llm driven.LLMService,
) *ChatOrchestrator {
	return &ChatOrchestrator{
		router:    router,
		retriever: retriever,
		memory:    memory,
		llm:       llm,
	}
}

// SetPromptStore sets the prompt store for loading customised constraint
// text.
func (o *ChatOrchestrator) SetPromptStore(store driven.PromptStore) {
	o.prompts = store
}

// clientContext is the client snapshot serialised into the system prompt.
type clientContext struct {
	UserID       string               `json:"userId"`
	Appointments []string             `json:"appointments"`
	Preferences  *domain.ClientMemory `json:"preferences"`
}

// Respond handles one chat turn. The reply is streamed through onDelta and
// also returned in full in the result.
func (o *ChatOrchestrator) Respond(
	ctx context.Context, req driving.ChatRequest, onDelta func(delta string),
) (*driving.ChatResult, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages must not be empty", domain.ErrInvalidInput)
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = AnonymousClientID
	}
	lastMessage := domain.LastUserContent(req.Messages)

	role, err := o.router.Route(ctx, lastMessage)
	if err != nil {
		return nil, err
	}
	cfg, ok := domain.AgentConfigs[role]
	if !ok {
		cfg = domain.AgentConfigs[domain.RoleProduct]
	}
	logger.Info("Executing agent %s for client %s", cfg.Role, clientID)

	memory, err := o.memory.Retrieve(ctx, clientID)
	if err != nil {
		logger.Warn("Client memory unavailable for %s: %v", clientID, err)
		memory = &domain.ClientMemory{}
	}

	sources, err := o.retriever.Search(ctx, lastMessage, domain.QueryOptions{
		TopK:   cfg.Retriever.TopK,
		Filter: cfg.Retriever.Filter,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	systemPrompt := o.buildSystemPrompt(cfg, clientID, memory, sources)

	chatMessages := make([]driven.ChatMessage, 0, len(req.Messages)+1)
	chatMessages = append(chatMessages, driven.ChatMessage{
		Role:    domain.MessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range req.Messages {
		chatMessages = append(chatMessages, driven.ChatMessage{Role: m.Role, Content: m.Content})
	}

	reply, err := o.llm.ChatStream(ctx, chatMessages, driven.ChatOptions{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}, onDelta)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}
	logger.Debug("Agent %s generated %d chars", cfg.Role, len(reply))

	if err := o.memory.ExtractAndSave(ctx, clientID, lastMessage); err != nil {
		logger.Warn("Insight extraction failed for %s: %v", clientID, err)
	}

	return &driving.ChatResult{
		Role:    cfg.Role,
		Reply:   reply,
		Sources: sources,
	}, nil
}

func (o *ChatOrchestrator) buildSystemPrompt(
	cfg domain.AgentConfig,
	clientID string,
	memory *domain.ClientMemory,
	sources []domain.RetrievalResult,
) string {
	contextBlock := "Cliente nuevo"
	if memory != nil && !memory.Empty() {
		snapshot := clientContext{
			UserID:       clientID,
			Appointments: []string{},
			Preferences:  memory,
		}
		if data, err := json.MarshalIndent(snapshot, "", "  "); err == nil {
			contextBlock = string(data)
		}
	}

	docBlocks := make([]string, len(sources))
	for i, src := range sources {
		docBlocks[i] = fmt.Sprintf("### [Fuente: %s]\n%s", src.Source, src.Content)
	}

	constraints := defaultConstraintsPrompt
	if o.prompts != nil {
		if custom, err := o.prompts.Load(driven.PromptChatConstraints); err == nil && custom != "" {
			constraints = custom
		}
	}

	return fmt.Sprintf(`%s

## Contexto de Cliente
%s

## Documentos Base de Conocimiento (RAG Context)
%s

## Restricciones Generales
%s`,
		strings.TrimSpace(cfg.SystemPrompt),
		contextBlock,
		strings.Join(docBlocks, "\n\n"),
		constraints,
	)
}
