package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdex-cli/internal/chunker"
	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docdex-cli/internal/fingerprint"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService walks the watched folder and indexes its documents.
type IngestService struct {
	source   driven.FileSource
	registry driven.ExtractorRegistry
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	store    driven.DocumentStore

	// Status tracking
	mu           sync.Mutex
	scanning     bool
	scanID       string
	lastScanTime time.Time
	stats        domain.ScanStats
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	source driven.FileSource,
	registry driven.ExtractorRegistry,
	textChunker *chunker.Chunker,
	embedder driven.EmbeddingService,
	store driven.DocumentStore,
) *IngestService {
	return &IngestService{
		source:   source,
		registry: registry,
		chunker:  textChunker,
		embedder: embedder,
		store:    store,
	}
}

// Scan walks the folder once and indexes every new or changed
// document. Only one scan runs at a time: a scan requested while
// another is active returns zero stats immediately.
func (s *IngestService) Scan(ctx context.Context) (domain.ScanStats, error) {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		logger.Debug("Scan already in progress, skipping")
		return domain.ScanStats{}, nil
	}
	s.scanning = true
	s.scanID = uuid.NewString()
	s.stats = domain.ScanStats{}
	scanID := s.scanID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.lastScanTime = time.Now()
		s.mu.Unlock()
	}()

	if err := s.source.Validate(ctx); err != nil {
		return domain.ScanStats{}, fmt.Errorf("validate folder: %w", err)
	}

	logger.Section("Scan " + scanID)

	filesCh, errsCh := s.source.Walk(ctx)

	// Drain both channels to completion. Returning as soon as the file
	// channel closes would drop walk errors still buffered on errsCh,
	// and the error count must cover every failure.
	for filesCh != nil || errsCh != nil {
		select {
		case <-ctx.Done():
			return s.snapshotStats(), ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			s.recordError()
			logger.Error("Scan error: %v", err)

		case raw, ok := <-filesCh:
			if !ok {
				filesCh = nil
				continue
			}

			logger.Debug("Processing: %s", raw.Path)
			outcome, err := s.processFile(ctx, &raw)
			if err != nil {
				s.recordError()
				logger.Error("Failed to process %s: %v", raw.Name, err)
				continue
			}
			s.record(outcome)
		}
	}

	stats := s.snapshotStats()
	logger.Info("Scan complete: %d processed, %d skipped, %d errors",
		stats.Processed, stats.Skipped, stats.Errors)
	return stats, nil
}

// fileOutcome distinguishes processed files from hash-skipped ones.
type fileOutcome int

const (
	outcomeProcessed fileOutcome = iota
	outcomeSkipped
)

// processFile indexes one file: fingerprint, change detection,
// extraction, chunking, embedding and atomic upsert.
func (s *IngestService) processFile(ctx context.Context, raw *domain.RawFile) (fileOutcome, error) {
	hash := fingerprint.Sum(raw.Content)

	// Unchanged content is skipped regardless of filename.
	if _, err := s.store.GetByHash(ctx, hash); err == nil {
		logger.Debug("Unchanged, skipping: %s", raw.Name)
		return outcomeSkipped, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("lookup by hash: %w", err)
	}

	// A same-named document with a different hash is a stale version.
	if existing, err := s.store.GetByName(ctx, raw.Name); err == nil {
		if existing.Hash != hash {
			logger.Debug("Content changed, replacing: %s", raw.Name)
			if err := s.store.Delete(ctx, existing.ID); err != nil {
				return 0, fmt.Errorf("delete stale version: %w", err)
			}
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("lookup by name: %w", err)
	}

	text, err := s.registry.Extract(ctx, raw)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}
	if text == "" {
		return 0, fmt.Errorf("no text extracted from %s", raw.Name)
	}

	pieces := s.chunker.Split(text)
	embeddings, err := s.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	docID := fingerprint.DocumentID(hash)
	chunks := make([]domain.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = domain.Chunk{
			ID:         domain.ChunkID(docID, i),
			DocumentID: docID,
			Index:      i,
			Content:    piece,
			Embedding:  embeddings[i],
		}
	}

	doc := &domain.Document{
		ID:           docID,
		Filename:     raw.Name,
		Filepath:     raw.Path,
		Size:         raw.Size,
		ModifiedTime: raw.ModifiedTime,
		Hash:         hash,
		Type:         raw.Type,
		Content:      text,
	}

	if err := s.store.UpsertDocument(ctx, doc, chunks); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}

	logger.Debug("Indexed %s as %s (%d chunks)", raw.Name, docID, len(chunks))
	return outcomeProcessed, nil
}

// Status returns the pipeline's current state.
func (s *IngestService) Status() domain.ScanStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ScanStatus{
		Running:      s.scanning,
		ScanID:       s.scanID,
		LastScanTime: s.lastScanTime,
		Stats:        s.stats,
	}
}

func (s *IngestService) record(outcome fileOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch outcome {
	case outcomeProcessed:
		s.stats.Processed++
	case outcomeSkipped:
		s.stats.Skipped++
	}
}

func (s *IngestService) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Errors++
}

func (s *IngestService) snapshotStats() domain.ScanStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
