package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
	"github.com/blackink-studio/inkwell/internal/logger"
)

// chatRequest is the wire shape of a chat turn.
type chatRequest struct {
	Messages []domain.Message `json:"messages"`
	UserID   string           `json:"userId"`
}

// chatEvent is a single SSE payload. Delta events carry a text fragment;
// the final event carries Done with the handling agent and sources, or a
// generic Error when the turn failed after streaming began.
type chatEvent struct {
	Delta   string                   `json:"delta,omitempty"`
	Done    bool                     `json:"done,omitempty"`
	Role    domain.AgentRole         `json:"role,omitempty"`
	Sources []domain.RetrievalResult `json:"sources,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

func (s *Server) handleChat(c *gin.Context) {
	if s.chat == nil {
		writeError(c, http.StatusServiceUnavailable, "chat service not configured")
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(c, http.StatusBadRequest, "messages must not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		writeError(c, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Headers are set lazily on the first event so a failure before any
	// delta can still answer with a plain error status.
	streamed := false
	startStream := func() {
		if streamed {
			return
		}
		streamed = true
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
	}

	result, err := s.chat.Respond(ctx, driving.ChatRequest{
		ClientID: req.UserID,
		Messages: req.Messages,
	}, func(delta string) {
		startStream()
		writeEvent(c, chatEvent{Delta: delta})
		flusher.Flush()
	})
	if err != nil {
		logger.Warn("chat turn failed: %v", err)
		if !streamed {
			writeError(c, http.StatusInternalServerError, "chat turn failed")
			return
		}
		// The status line is committed once deltas flushed, so surface
		// the failure as a terminal event. Detail stays in the log.
		writeEvent(c, chatEvent{Done: true, Error: "chat turn failed"})
		flusher.Flush()
		return
	}

	startStream()
	writeEvent(c, chatEvent{Done: true, Role: result.Role, Sources: result.Sources})
	flusher.Flush()
}

func writeEvent(c *gin.Context, ev chatEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(data)
	c.Writer.Write([]byte("\n\n"))
}
