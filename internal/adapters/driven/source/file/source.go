// Package file provides a document source backed by a local knowledge
// directory. Markdown and plain-text files become documents; subdirectory
// names map to document categories. The source is watchable, so serve mode
// re-ingests when the directory changes.
package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/logger"
)

// Ensure Source implements the interfaces.
var (
	_ driven.DocumentSource  = (*Source)(nil)
	_ driven.WatchableSource = (*Source)(nil)
)

// debounceWindow collapses editor save bursts into one notification.
const debounceWindow = 500 * time.Millisecond

// categoryTypes maps a subdirectory name to a document type.
var categoryTypes = map[string]domain.DocumentType{
	"faq":      domain.DocumentTypeFAQ,
	"services": domain.DocumentTypeServices,
	"policies": domain.DocumentTypePolicies,
	"care":     domain.DocumentTypeCare,
	"blog":     domain.DocumentTypeBlog,
}

// Source reads documents from a directory tree.
type Source struct {
	root string
}

// NewSource creates a file document source rooted at dir.
func NewSource(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("knowledge directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("knowledge directory %q is not a directory", dir)
	}
	return &Source{root: dir}, nil
}

// Name identifies the source for logging.
func (s *Source) Name() string {
	return "file:" + s.root
}

// Fetch walks the directory and returns one document per .md or .txt file.
func (s *Source) Fetch(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Hidden directories stay out of the knowledge base.
			if strings.HasPrefix(d.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		doc, err := s.readDocument(path, d)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk knowledge directory: %w", err)
	}

	logger.Debug("File source loaded %d documents from %s", len(docs), s.root)
	return docs, nil
}

func (s *Source) readDocument(path string, d fs.DirEntry) (domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	info, err := d.Info()
	if err != nil {
		return domain.Document{}, fmt.Errorf("stat %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = d.Name()
	}

	category := categoryOf(rel)
	docType, ok := categoryTypes[category]
	if !ok {
		docType = domain.DocumentTypeBlog
	}

	title := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))

	return domain.Document{
		Type:    docType,
		Title:   title,
		Content: string(content),
		Metadata: domain.DocumentMetadata{
			Source:      rel,
			Category:    category,
			Priority:    3,
			LastUpdated: info.ModTime().UTC(),
		},
	}, nil
}

// categoryOf derives the category from the first path segment, so
// knowledge/care/aftercare.md lands in "care". Files at the root have no
// category.
func categoryOf(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(dir), "/")
	return parts[0]
}

// Watch delivers a notification whenever a file under the root changes.
// Notifications are debounced; the channel closes when ctx is cancelled.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the root and every existing subdirectory; fsnotify is not
	// recursive by itself.
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch knowledge directory: %w", err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				// New subdirectories join the watch set.
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				if timer == nil {
					timer = time.NewTimer(debounceWindow)
					timerC = timer.C
				} else {
					timer.Reset(debounceWindow)
				}

			case <-timerC:
				timer = nil
				timerC = nil
				select {
				case changes <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Knowledge watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}
