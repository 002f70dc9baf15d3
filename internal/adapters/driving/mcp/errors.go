// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Inkwell. It exposes the studio knowledge base to AI assistants as tools.
package mcp

import "errors"

// ErrMissingRetriever is returned when the retriever is not provided.
var ErrMissingRetriever = errors.New("mcp: retriever is required")
