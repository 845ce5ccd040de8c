package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.Searcher = (*SearchService)(nil)

// DefaultAskLimit is how many chunks ground a generated answer.
const DefaultAskLimit = 5

// SearchService ranks stored chunks against queries by cosine
// similarity and optionally generates grounded answers.
type SearchService struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
	llm      driven.LLMService // nil when no LLM is configured
}

// NewSearchService creates a new search service. llm may be nil, in
// which case Ask returns domain.ErrLLMUnavailable.
func NewSearchService(
	store driven.DocumentStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
) *SearchService {
	return &SearchService{
		store:    store,
		embedder: embedder,
		llm:      llm,
	}
}

// Search embeds the query and scores it against every stored chunk.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit < 1 {
		limit = 10
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	refs, err := s.store.AllChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}

	logger.Debug("Scoring %d chunks against query", len(refs))

	results := make([]domain.SearchResult, 0, len(refs))
	for _, ref := range refs {
		results = append(results, domain.SearchResult{
			DocumentID: ref.DocumentID,
			Filename:   ref.Filename,
			Content:    ref.Content,
			Similarity: cosineSimilarity(queryVec, ref.Embedding),
			ChunkIndex: ref.Index,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Ask retrieves relevant chunks and generates a grounded answer.
func (s *SearchService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	sources, err := s.Search(ctx, question, DefaultAskLimit)
	if err != nil {
		return nil, err
	}

	contextParts := make([]string, len(sources))
	for i, src := range sources {
		contextParts[i] = fmt.Sprintf("[%s] %s", src.Filename, src.Content)
	}

	response, err := s.llm.Answer(ctx, question, strings.Join(contextParts, "\n\n"))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Response: response,
		Model:    s.llm.ModelName(),
		Sources:  sources,
	}, nil
}

// cosineSimilarity computes the cosine of the angle between two
// vectors. Mismatched dimensions or a zero-magnitude vector score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		magA += av * av
		magB += bv * bv
	}

	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
