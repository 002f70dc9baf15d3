package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// SearchInput is the input schema for the search_knowledge tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the search query against the studio knowledge base"`
	TopK     int    `json:"topK,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to one knowledge category, e.g. pricing or care"`
	Source   string `json:"source,omitempty" jsonschema:"restrict results to one document source"`
}

// SearchOutput is the output schema for the search_knowledge tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieval result.
type SearchResultOutput struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
	Source   string  `json:"source"`
	Category string  `json:"category,omitempty"`
}

// IngestInput is the input schema for the ingest_documents tool.
type IngestInput struct {
	Documents []IngestDocumentInput `json:"documents,omitempty" jsonschema:"documents to ingest; when omitted the configured source is ingested"`
}

// IngestDocumentInput is a single inline document.
type IngestDocumentInput struct {
	Title    string `json:"title" jsonschema:"document title"`
	Content  string `json:"content" jsonschema:"document body text"`
	Source   string `json:"source,omitempty" jsonschema:"source identifier stored with each chunk"`
	Category string `json:"category,omitempty" jsonschema:"knowledge category"`
}

// IngestOutput is the output schema for the ingest_documents tool.
type IngestOutput struct {
	Success           bool   `json:"success"`
	Documents         int    `json:"documents"`
	Chunks            int    `json:"chunks"`
	Stored            int    `json:"stored"`
	EmbeddingFailures int    `json:"embeddingFailures,omitempty"`
	FailedStage       string `json:"failedStage,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the tattoo studio knowledge base (pricing, services, policies, aftercare)",
	}, s.handleSearch)

	if s.ports.Ingestor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_documents",
			Description: "Ingest documents into the knowledge base, or re-ingest the configured source",
		}, s.handleIngest)
	}
}

// handleSearch handles the search_knowledge tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.QueryOptions{TopK: input.TopK}
	filter := domain.MetadataFilter{}
	if input.Category != "" {
		filter["category"] = input.Category
	}
	if input.Source != "" {
		filter["source"] = input.Source
	}
	if len(filter) > 0 {
		opts.Filter = filter
	}

	results, err := s.ports.Retriever.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			ID:       results[i].ID,
			Content:  results[i].Content,
			Score:    results[i].Score,
			Source:   results[i].Source,
			Category: results[i].Category,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest_documents tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	var (
		report *domain.IngestReport
		err    error
	)

	if len(input.Documents) == 0 {
		report, err = s.ports.Ingestor.Ingest(ctx)
	} else {
		docs := make([]domain.Document, len(input.Documents))
		for i, d := range input.Documents {
			docs[i] = domain.Document{
				Title:   d.Title,
				Content: d.Content,
				Metadata: domain.DocumentMetadata{
					Source:   d.Source,
					Category: d.Category,
				},
			}
		}
		report, err = s.ports.Ingestor.IngestDocuments(ctx, docs)
	}
	if err != nil {
		output := IngestOutput{Success: false}
		if report != nil {
			output = reportOutput(report, false)
		}
		return nil, output, err
	}

	return nil, reportOutput(report, true), nil
}

func reportOutput(r *domain.IngestReport, success bool) IngestOutput {
	return IngestOutput{
		Success:           success,
		Documents:         r.Documents,
		Chunks:            r.Chunks,
		Stored:            r.Stored,
		EmbeddingFailures: r.EmbeddingFailures,
		FailedStage:       string(r.FailedStage),
	}
}
