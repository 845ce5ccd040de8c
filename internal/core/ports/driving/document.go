package driving

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// DocumentService exposes catalog operations over stored documents.
type DocumentService interface {
	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns one page of documents newest-first plus the total
	// count. An empty fileType means no filter.
	List(ctx context.Context, page, pageSize int, fileType domain.FileType) ([]domain.Document, int, error)

	// Delete removes a document and its chunks. Idempotent.
	Delete(ctx context.Context, id string) error

	// Counts returns the stored document and chunk totals.
	Counts(ctx context.Context) (documents, chunks int, err error)

	// Prune deletes documents older than maxAgeDays whose chunks saw
	// no write activity within graceDays. Returns the number deleted.
	Prune(ctx context.Context, maxAgeDays, graceDays int) (int, error)
}
