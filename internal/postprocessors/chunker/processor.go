// Package chunker provides a paragraph-aware text chunking processor.
package chunker

import (
	"context"
	"regexp"

	"github.com/blackink-studio/inkwell/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 100

// paragraphSep matches runs of two or more newlines. A paragraph is the
// maximal run of text between such separators.
var paragraphSep = regexp.MustCompile(`\n\n+`)

// Processor splits document content into bounded-size chunks along
// paragraph boundaries. Paragraphs are accumulated greedily and never split
// mid-unit, so a chunk may exceed the configured size only when a single
// paragraph alone exceeds it. Consecutive chunks share a trailing-character
// overlap. It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	paragraphs := paragraphSep.Split(doc.Content, -1)

	var chunks []domain.Chunk
	current := ""

	for _, para := range paragraphs {
		potential := current
		if current != "" {
			potential += "\n\n"
		}
		potential += para

		if len(potential) > p.chunkSize && current != "" {
			chunks = append(chunks, p.makeChunk(doc, current))

			// Seed the next buffer with the tail of the emitted chunk so
			// consecutive chunks share context.
			tail := current
			if len(tail) > p.overlap {
				tail = tail[len(tail)-p.overlap:]
			}
			current = tail + para
		} else {
			current = potential
		}
	}

	if current != "" {
		chunks = append(chunks, p.makeChunk(doc, current))
	}

	return chunks, nil
}

// makeChunk builds a chunk carrying the document's metadata unchanged plus
// the computed token estimate.
func (p *Processor) makeChunk(doc *domain.Document, content string) domain.Chunk {
	return domain.Chunk{
		Content:        content,
		Metadata:       doc.Metadata,
		Tokens:         (len(content) + 3) / 4,
		OriginalLength: len(content),
	}
}
