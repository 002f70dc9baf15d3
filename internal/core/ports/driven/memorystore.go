package driven

import "context"

// MemoryStore persists long-term per-client notes.
//
// Implementations may include:
//   - Mem0 (hosted memory service)
//   - SQLite (local fallback)
type MemoryStore interface {
	// Add stores a text snippet associated with a client identifier.
	Add(ctx context.Context, clientID, text string) error

	// Search returns stored snippets related to the query for a client,
	// at most limit entries.
	Search(ctx context.Context, clientID, query string, limit int) ([]string, error)

	// Close releases resources.
	Close() error
}
