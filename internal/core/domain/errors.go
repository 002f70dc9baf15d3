package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the language-model provider is not
	// configured. Chat, intent routing and insight extraction are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not
	// configured or unreachable. A store query failure is a fatal pipeline
	// failure, never an empty result.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrMemoryUnavailable indicates the long-term memory service is not
	// configured. Chat degrades gracefully without client memory.
	ErrMemoryUnavailable = errors.New("memory service unavailable")

	// ErrSourceUnavailable indicates the document source cannot be read.
	ErrSourceUnavailable = errors.New("document source unavailable")

	// ErrUnauthorized indicates the caller failed the ingest secret check.
	ErrUnauthorized = errors.New("unauthorized")
)
