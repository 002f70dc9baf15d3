package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/blackink-studio/inkwell/internal/core/domain"
	"github.com/blackink-studio/inkwell/internal/core/ports/driven"
	"github.com/blackink-studio/inkwell/internal/core/ports/driving"
	"github.com/blackink-studio/inkwell/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// DefaultTopK is the number of results returned when the caller does not
// specify one.
const DefaultTopK = 5

// candidateWidening is the factor applied to topK when querying the vector
// store, giving the hybrid ranker a wider pool to re-rank from.
const candidateWidening = 1.5

// RetrievalService runs the query pipeline: embed the query, fetch a
// widened candidate set from the vector store, then hybrid-rank and
// truncate. The embedding service is expected to be the failsoft variant so
// an embedding outage degrades relevance instead of failing the query.
type RetrievalService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, store driven.VectorStore) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		store:    store,
	}
}

// Search performs hybrid retrieval over the knowledge base.
// An empty or whitespace-only query returns an empty list without invoking
// the embedder or the store.
func (s *RetrievalService) Search(
	ctx context.Context, query string, opts domain.QueryOptions,
) ([]domain.RetrievalResult, error) {
	logger.Section("Hybrid Search")
	logger.Debug("Query: %q", query)

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RetrievalResult{}, nil
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return nil, domain.ErrVectorStoreUnavailable
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// Request more candidates than topK so keyword scoring can promote
	// results the store ranked lower.
	widened := int(math.Ceil(float64(topK) * candidateWidening))
	logger.Debug("Requesting %d candidates for topK=%d", widened, topK)

	matches, err := s.store.Query(ctx, embedding, widened, opts.Filter)
	if err != nil {
		// A store failure is a genuine fault, not an empty result.
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := rankHybrid(query, matches, topK)
	logger.Info("Hybrid search: %d candidates, %d results", len(matches), len(results))
	if len(results) > 0 {
		logger.Debug("Top match score: %.4f", results[0].Score)
	}

	return results, nil
}

// rankHybrid combines the store's semantic score with a lexical keyword
// count: combined = semantic*0.7 + keywordCount*0.3. The keyword count is an
// unnormalised integer, so long queries can let the lexical component
// dominate; that query-length dependence is a documented property of the
// scheme, not corrected here.
func rankHybrid(query string, matches []driven.VectorMatch, topK int) []domain.RetrievalResult {
	keywords := queryKeywords(query)

	type scored struct {
		match driven.VectorMatch
		score float64
	}

	ranked := make([]scored, 0, len(matches))
	for _, m := range matches {
		text := strings.ToLower(m.Text)

		count := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				count++
			}
		}

		combined := m.Score*domain.SemanticWeight + float64(count)*domain.KeywordWeight
		ranked = append(ranked, scored{match: m, score: combined})
	}

	// Stable sort keeps the store's candidate order as the tie-break.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	results := make([]domain.RetrievalResult, len(ranked))
	for i, r := range ranked {
		results[i] = domain.RetrievalResult{
			ID:       r.match.ID,
			Content:  r.match.Text,
			Score:    r.score,
			Source:   r.match.Source,
			Category: r.match.Category,
		}
	}

	return results
}

// queryKeywords lowercases and tokenises the query, discarding tokens of
// MinKeywordLength characters or fewer. Duplicate tokens are kept: a keyword
// counts once per occurrence in the token list.
func queryKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > domain.MinKeywordLength {
			keywords = append(keywords, f)
		}
	}

	return keywords
}
