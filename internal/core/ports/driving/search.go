package driving

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// Searcher retrieves document chunks relevant to a free-text query.
type Searcher interface {
	// Search embeds the query, scores it against every stored chunk by
	// cosine similarity, and returns at most limit results in
	// descending similarity order. Fewer than limit chunks in the
	// store means fewer results - never padding, never an error.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// Ask retrieves relevant chunks for the question and generates a
	// grounded answer via the LLM service.
	// Returns domain.ErrLLMUnavailable when no LLM is configured.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
