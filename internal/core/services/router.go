package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/logger"
)

var _ driven.PromptStoreAware = (*IntentRouter)(nil)

// defaultIntentPrompt classifies a client message into an agent role.
// The categories mirror the agent roster; "general" is a catch-all that
// routes to the product agent.
const defaultIntentPrompt = `Clasifica el siguiente mensaje en UNA de estas categorías:
- booking: Quiere agendar una cita
- product: Pregunta sobre servicios/diseños/artistas
- support: Problema con cita, cancelación, reembolso
- sales: Quiere información de ofertas/paquetes
- care: Pregunta sobre cuidados post-tatuaje
- admin: Solo personal administrativo
- general: Saludos, charla casual o preguntas ambiguas

Mensaje: "%s"

Responde SOLO con la categoría.`

// intentModel and intentTemperature pin classification to a cheap,
// low-variance configuration regardless of the default chat model.
const (
	intentModel       = "gpt-4o-mini"
	intentTemperature = 0.3
)

// IntentRouter classifies client messages into agent roles using the LLM.
// Unknown or "general" classifications fall back to the product agent,
// the most flexible role.
type IntentRouter struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewIntentRouter creates a new intent router.
func NewIntentRouter(llm driven.LLMService) *IntentRouter {
	return &IntentRouter{llm: llm}
}

// SetPromptStore sets the prompt store for loading a customised
// classification prompt.
func (r *IntentRouter) SetPromptStore(store driven.PromptStore) {
	r.prompts = store
}

// Route classifies the message and returns the agent role to handle it.
// An LLM failure propagates to the caller; routing without classification
// would silently answer with the wrong specialist.
func (r *IntentRouter) Route(ctx context.Context, message string) (domain.AgentRole, error) {
	if r.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	template := defaultIntentPrompt
	if r.prompts != nil {
		if custom, err := r.prompts.Load(driven.PromptIntentClassify); err == nil && custom != "" {
			template = custom
		}
	}

	reply, err := r.llm.Generate(ctx, fmt.Sprintf(template, message), driven.GenerateOptions{
		Model:       intentModel,
		Temperature: intentTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("classify intent: %w", err)
	}

	category := strings.ToLower(strings.TrimSpace(reply))
	logger.Debug("Intent classified as %q", category)

	if category == "general" {
		return domain.RoleProduct, nil
	}

	if domain.ValidRole(category) {
		return domain.AgentRole(category), nil
	}

	logger.Warn("Unknown intent category %q, routing to product agent", category)
	return domain.RoleProduct, nil
}
