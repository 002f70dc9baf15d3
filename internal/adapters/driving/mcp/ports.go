package mcp

import (
	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever provides knowledge-base search.
	Retriever driving.Retriever

	// Ingestor runs the document pipeline. Optional; the ingest tool is
	// only registered when set.
	Ingestor driving.Ingestor
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	return nil
}
