package driving

import (
	"context"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// ChatRequest is a single chat turn from a client.
type ChatRequest struct {
	// ClientID identifies the client for memory retrieval. Defaults to an
	// anonymous visitor id when empty.
	ClientID string

	// Messages is the conversation so far, newest last.
	Messages []domain.Message
}

// ChatResult summarises a completed chat turn.
type ChatResult struct {
	// Role is the agent that handled the turn.
	Role domain.AgentRole

	// Reply is the full generated response text.
	Reply string

	// Sources lists the retrieval results injected into the prompt.
	Sources []domain.RetrievalResult
}

// ChatService routes a client message to the right agent and generates a
// streamed response.
type ChatService interface {
	// Respond handles one chat turn. onDelta, when non-nil, receives each
	// generated text fragment as it arrives.
	Respond(ctx context.Context, req ChatRequest, onDelta func(delta string)) (*ChatResult, error)
}
