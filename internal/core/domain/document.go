package domain

import "time"

// DocumentType categorises a knowledge-base document by its origin.
type DocumentType string

// Known document types.
const (
	DocumentTypeFAQ             DocumentType = "faq"
	DocumentTypeServices        DocumentType = "services"
	DocumentTypePolicies        DocumentType = "policies"
	DocumentTypeCare            DocumentType = "care"
	DocumentTypeBlog            DocumentType = "blog"
	DocumentTypePortfolio       DocumentType = "portfolio"
	DocumentTypePortfolioImages DocumentType = "portfolio_images"
)

// DocumentMetadata describes where a document came from and how it should
// be prioritised during retrieval.
type DocumentMetadata struct {
	// Source identifies the system the document was ingested from.
	Source string

	// Category groups documents for retrieval filtering (e.g. "pricing").
	Category string

	// Priority ranks documents 1-5, where 5 is the highest.
	Priority int

	// LastUpdated is when the source content last changed.
	LastUpdated time.Time

	// Author is the optional document author.
	Author string

	// Tags are optional free-form labels.
	Tags []string
}

// Document is a unit of source knowledge produced by an ingestion source.
// Documents are immutable once produced and are consumed only by the chunker.
type Document struct {
	// Type categorises the document.
	Type DocumentType

	// Title is the human-readable title.
	Title string

	// Content is the raw text content.
	Content string

	// Metadata carries source, category, priority and related attributes.
	Metadata DocumentMetadata
}

// Chunk is a bounded-length span of a document's text plus propagated
// metadata. A chunk's content never exceeds the configured chunk size unless
// a single paragraph alone exceeds it, since paragraphs are not split.
type Chunk struct {
	// Content is the chunk text.
	Content string

	// Metadata is the source document's metadata unchanged.
	Metadata DocumentMetadata

	// Tokens is an approximate token count, ceil(len(Content)/4).
	Tokens int

	// OriginalLength is the chunk content length at creation time.
	OriginalLength int
}

// VectorRecord is the persisted unit in the vector store. Records are
// created at store time and never mutated; ids are unique across the store
// and the store overwrites by id (last write wins).
type VectorRecord struct {
	// ID is the unique record identifier.
	ID string

	// Embedding is the fixed-dimension vector for the chunk text.
	Embedding []float32

	// Metadata is the chunk metadata propagated to the store.
	Metadata DocumentMetadata

	// Text is the chunk content, truncated to MaxStoredTextLength.
	Text string

	// ChunkIndex is the chunk's position within its ingestion run.
	ChunkIndex int
}

// MaxStoredTextLength caps the chunk text copied into record metadata.
const MaxStoredTextLength = 4000

// TruncateStoredText returns text capped at MaxStoredTextLength characters.
func TruncateStoredText(text string) string {
	if len(text) > MaxStoredTextLength {
		return text[:MaxStoredTextLength]
	}
	return text
}
