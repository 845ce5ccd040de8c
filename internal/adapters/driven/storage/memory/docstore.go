// Package memory provides an in-memory document store, used by service
// tests that do not need SQLite on disk.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]domain.Chunk
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]domain.Chunk),
	}
}

// UpsertDocument stores a document and its chunks, replacing any
// previous version sharing the ID or filename.
func (s *DocumentStore) UpsertDocument(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	for id, existing := range s.documents {
		if id == doc.ID || existing.Filename == doc.Filename {
			delete(s.documents, id)
			delete(s.chunks, id)
		}
	}

	stored := make([]domain.Chunk, len(chunks))
	copy(stored, chunks)
	for i := range stored {
		if stored[i].CreatedAt.IsZero() {
			stored[i].CreatedAt = now
		}
	}

	s.documents[doc.ID] = *doc
	s.chunks[doc.ID] = stored
	return nil
}

// GetByID retrieves a document by ID.
func (s *DocumentStore) GetByID(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByHash retrieves a document by content hash.
func (s *DocumentStore) GetByHash(_ context.Context, hash string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.documents {
		if doc.Hash == hash {
			d := doc
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByName retrieves a document by filename.
func (s *DocumentStore) GetByName(_ context.Context, filename string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.documents {
		if doc.Filename == filename {
			d := doc
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns one page of documents ordered newest-first.
func (s *DocumentStore) List(_ context.Context, page, pageSize int, fileType domain.FileType) ([]domain.Document, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []domain.Document
	for _, doc := range s.documents {
		if fileType != "" && doc.Type != fileType {
			continue
		}
		filtered = append(filtered, doc)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

// Delete removes a document and its chunks. Missing IDs are ignored.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, id)
	delete(s.chunks, id)
	return nil
}

// GetChunks retrieves a document's chunks in index order.
func (s *DocumentStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, len(s.chunks[documentID]))
	copy(chunks, s.chunks[documentID])
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Index < chunks[j].Index })
	return chunks, nil
}

// AllChunks returns every chunk joined with its document's filename,
// ordered newest document first (ties by document ID), then chunk
// index. Map iteration is randomized, so the sort keeps repeated
// searches with tied similarities deterministic.
func (s *DocumentStore) AllChunks(_ context.Context) ([]driven.ChunkRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type docRef struct {
		driven.ChunkRef
		createdAt time.Time
	}

	var refs []docRef
	for docID, chunks := range s.chunks {
		doc, ok := s.documents[docID]
		if !ok {
			continue
		}
		for _, chunk := range chunks {
			refs = append(refs, docRef{
				ChunkRef:  driven.ChunkRef{Chunk: chunk, Filename: doc.Filename},
				createdAt: doc.CreatedAt,
			})
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if !refs[i].createdAt.Equal(refs[j].createdAt) {
			return refs[i].createdAt.After(refs[j].createdAt)
		}
		if refs[i].DocumentID != refs[j].DocumentID {
			return refs[i].DocumentID < refs[j].DocumentID
		}
		return refs[i].Index < refs[j].Index
	})

	out := make([]driven.ChunkRef, len(refs))
	for i, ref := range refs {
		out[i] = ref.ChunkRef
	}
	return out, nil
}

// CountDocuments returns the number of stored documents.
func (s *DocumentStore) CountDocuments(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

// CountChunks returns the number of stored chunks.
func (s *DocumentStore) CountChunks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, chunks := range s.chunks {
		count += len(chunks)
	}
	return count, nil
}

// EvictStale deletes documents created more than maxAge ago, sparing
// any whose chunks were written within the grace period.
func (s *DocumentStore) EvictStale(_ context.Context, maxAge, grace time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	ageCutoff := now.Add(-maxAge)
	graceCutoff := now.Add(-grace)

	deleted := 0
	for id, doc := range s.documents {
		if !doc.CreatedAt.Before(ageCutoff) {
			continue
		}
		recent := false
		for _, chunk := range s.chunks[id] {
			if chunk.CreatedAt.After(graceCutoff) {
				recent = true
				break
			}
		}
		if recent {
			continue
		}
		delete(s.documents, id)
		delete(s.chunks, id)
		deleted++
	}
	return deleted, nil
}
