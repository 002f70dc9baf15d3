package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/logger"
)

// ingestResponse reports an ingestion run over the wire.
type ingestResponse struct {
	Success bool                 `json:"success"`
	Stats   *domain.IngestReport `json:"stats,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func (s *Server) handleIngest(c *gin.Context) {
	if s.ingest == nil {
		writeError(c, http.StatusServiceUnavailable, "ingestion not configured")
		return
	}

	if !s.authorizeIngest(c) {
		writeError(c, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ingestTimeout)
	defer cancel()

	report, err := s.ingest.Ingest(ctx)
	if err != nil {
		logger.Warn("ingest run failed: %v", err)
		c.JSON(http.StatusInternalServerError, ingestResponse{
			Success: false,
			Stats:   report,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ingestResponse{Success: true, Stats: report})
}

// authorizeIngest checks the shared ingest secret. An unset secret leaves
// the endpoint open for local development.
func (s *Server) authorizeIngest(c *gin.Context) bool {
	if s.cfg.IngestSecret == "" {
		return true
	}
	auth := c.GetHeader("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	return token != auth && token == s.cfg.IngestSecret
}
