package cli

import (
	"context"
	"testing"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// mockIngestor returns canned scan results.
type mockIngestor struct {
	stats  domain.ScanStats
	status domain.ScanStatus
	err    error
}

func (m *mockIngestor) Scan(_ context.Context) (domain.ScanStats, error) {
	return m.stats, m.err
}

func (m *mockIngestor) Status() domain.ScanStatus {
	return m.status
}

// mockSearcher returns canned search results and answers.
type mockSearcher struct {
	results []domain.SearchResult
	answer  *domain.Answer
	err     error
}

func (m *mockSearcher) Search(_ context.Context, _ string, limit int) ([]domain.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) > limit {
		return m.results[:limit], nil
	}
	return m.results, nil
}

func (m *mockSearcher) Ask(_ context.Context, _ string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

// mockDocumentService returns canned catalog data.
type mockDocumentService struct {
	docs    []domain.Document
	total   int
	deleted []string
	pruned  int
	err     error
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) List(_ context.Context, _, _ int, _ domain.FileType) ([]domain.Document, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.docs, m.total, nil
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockDocumentService) Counts(_ context.Context) (int, int, error) {
	return len(m.docs), m.total, m.err
}

func (m *mockDocumentService) Prune(_ context.Context, _, _ int) (int, error) {
	return m.pruned, m.err
}

// setupTestServices wires mocks into the package-level service vars
// and returns a cleanup that restores the previous wiring.
func setupTestServices(t *testing.T, ing *mockIngestor, search *mockSearcher, docs *mockDocumentService) func() {
	t.Helper()

	oldIngestor := ingestor
	oldSearcher := searcher
	oldDocs := documentService

	if ing != nil {
		ingestor = ing
	}
	if search != nil {
		searcher = search
	}
	if docs != nil {
		documentService = docs
	}

	return func() {
		ingestor = oldIngestor
		searcher = oldSearcher
		documentService = oldDocs
		rootCmd.SetArgs(nil)
	}
}
