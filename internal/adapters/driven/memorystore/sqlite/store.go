// Package sqlite provides a local MemoryStore backed by SQLite. It serves
// studios that want client memory without a hosted memory service.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/blackink-studio/inkwell/internal/adapters/driven/memorystore/sqlite/migrations"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MemoryStore = (*Store)(nil)

// Store is a SQLite-backed client memory store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite memory store at the specified data
// directory. If dataDir is empty, defaults to ~/.inkwell/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inkwell", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "memories.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Add stores a text snippet for a client.
func (s *Store) Add(ctx context.Context, clientID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client_memories (client_id, memory) VALUES (?, ?)`,
		clientID, text,
	)
	if err != nil {
		return fmt.Errorf("inserting memory: %w", err)
	}
	return nil
}

// Search returns up to limit snippets for the client, preferring entries
// sharing keywords with the query and falling back to the most recent ones.
// SQLite has no embedding index, so relevance here is lexical.
func (s *Store) Search(ctx context.Context, clientID, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT memory FROM client_memories WHERE client_id = ? ORDER BY created_at DESC, id DESC`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying memories: %w", err)
	}
	defer rows.Close()

	var memories []string
	for rows.Next() {
		var memory string
		if err := rows.Scan(&memory); err != nil {
			return nil, fmt.Errorf("scanning memory: %w", err)
		}
		memories = append(memories, memory)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memories: %w", err)
	}

	ranked := rankByKeywords(memories, query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// rankByKeywords orders memories by shared keyword count with the query,
// keeping recency order between equals.
func rankByKeywords(memories []string, query string) []string {
	keywords := []string{}
	for _, f := range strings.Fields(strings.ToLower(query)) {
		if len(f) > 3 {
			keywords = append(keywords, f)
		}
	}
	if len(keywords) == 0 {
		return memories
	}

	type scored struct {
		memory string
		hits   int
	}
	ranked := make([]scored, len(memories))
	for i, m := range memories {
		lower := strings.ToLower(m)
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		ranked[i] = scored{memory: m, hits: hits}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].hits > ranked[j].hits
	})

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.memory
	}
	return out
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
