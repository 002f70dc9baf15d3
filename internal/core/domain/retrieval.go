package domain

// MetadataFilter restricts vector-store matches by metadata field values.
// A string or numeric value requires equality; a []string value matches if
// the field equals any element. Adapters translate this into the store's
// native filter syntax.
type MetadataFilter map[string]any

// QueryOptions configures a retrieval query.
type QueryOptions struct {
	// TopK is the number of ranked results to return.
	TopK int

	// Filter optionally restricts candidates by metadata.
	Filter MetadataFilter
}

// RetrievalResult is an ephemeral, per-query value. It is never persisted;
// its lifetime is the duration of a single query call.
type RetrievalResult struct {
	// ID is the matched record id.
	ID string `json:"id"`

	// Content is the stored chunk text.
	Content string `json:"content"`

	// Score is the combined hybrid score.
	Score float64 `json:"score"`

	// Source is the record's source identifier.
	Source string `json:"source"`

	// Category is the record's category, if any.
	Category string `json:"category"`
}

// Hybrid ranking weights. The keyword component is an unnormalised integer
// count while the semantic component is bounded roughly [0,1]; ranking
// quality therefore depends on query length. This asymmetry is a documented
// property of the scoring scheme, kept for compatibility.
const (
	SemanticWeight = 0.7
	KeywordWeight  = 0.3
)

// MinKeywordLength is the shortest query token retained for keyword scoring.
// Tokens of this length or shorter are discarded.
const MinKeywordLength = 3
