package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// Default eviction windows, in days.
const (
	DefaultPruneMaxAgeDays = 30
	DefaultPruneGraceDays  = 7
)

// DocumentService exposes catalog operations over the store.
type DocumentService struct {
	store driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(store driven.DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.GetByID(ctx, id)
}

// List returns one page of documents newest-first plus the total count.
func (s *DocumentService) List(ctx context.Context, page, pageSize int, fileType domain.FileType) ([]domain.Document, int, error) {
	if fileType != "" && !fileType.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown file type %q", domain.ErrInvalidInput, fileType)
	}
	return s.store.List(ctx, page, pageSize, fileType)
}

// Delete removes a document and its chunks. Idempotent.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}

// Counts returns the stored document and chunk totals.
func (s *DocumentService) Counts(ctx context.Context) (int, int, error) {
	documents, err := s.store.CountDocuments(ctx)
	if err != nil {
		return 0, 0, err
	}
	chunks, err := s.store.CountChunks(ctx)
	if err != nil {
		return 0, 0, err
	}
	return documents, chunks, nil
}

// Prune evicts documents older than maxAgeDays whose chunks saw no
// write activity within graceDays. Non-positive arguments fall back
// to the defaults.
func (s *DocumentService) Prune(ctx context.Context, maxAgeDays, graceDays int) (int, error) {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultPruneMaxAgeDays
	}
	if graceDays <= 0 {
		graceDays = DefaultPruneGraceDays
	}

	deleted, err := s.store.EvictStale(ctx,
		time.Duration(maxAgeDays)*24*time.Hour,
		time.Duration(graceDays)*24*time.Hour)
	if err != nil {
		return 0, fmt.Errorf("evict stale documents: %w", err)
	}

	if deleted > 0 {
		logger.Info("Pruned %d stale documents", deleted)
	}
	return deleted, nil
}
