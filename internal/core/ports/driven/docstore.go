package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// ChunkRef pairs a stored chunk with its owning document's filename.
// It is the unit the retrieval engine scores against.
type ChunkRef struct {
	domain.Chunk

	// Filename is the owning document's filename.
	Filename string
}

// DocumentStore persists documents and their chunks.
// Backed by SQLite for metadata storage.
//
// No operation may leave an orphaned chunk: a chunk whose DocumentID
// has no matching document.
type DocumentStore interface {
	// UpsertDocument atomically stores a document together with all its
	// chunks. Either everything is persisted or nothing is; a partial
	// failure rolls back and surfaces an error.
	UpsertDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetByID retrieves a document by ID.
	// Returns domain.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*domain.Document, error)

	// GetByHash retrieves a document by content hash.
	// Returns domain.ErrNotFound when absent.
	GetByHash(ctx context.Context, hash string) (*domain.Document, error)

	// GetByName retrieves a document by filename.
	// Returns domain.ErrNotFound when absent.
	GetByName(ctx context.Context, filename string) (*domain.Document, error)

	// List returns one page of documents ordered newest-first, plus the
	// total count consistent with the filter. Pages are 1-based.
	// An empty fileType means no filter.
	List(ctx context.Context, page, pageSize int, fileType domain.FileType) ([]domain.Document, int, error)

	// Delete removes a document and cascades chunk deletion.
	// Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// GetChunks retrieves a document's chunks in index order.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// AllChunks returns every stored chunk joined with its document's
	// filename, for full-scan similarity ranking. The order is
	// deterministic: newest document first, ties broken by document ID,
	// then chunk index. A stable ranking sort depends on it when
	// similarities tie.
	AllChunks(ctx context.Context) ([]ChunkRef, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// EvictStale deletes documents created more than maxAge ago, unless
	// any of their chunks were written within the last grace period.
	// Returns the number of documents deleted.
	EvictStale(ctx context.Context, maxAge, grace time.Duration) (int, error)
}
