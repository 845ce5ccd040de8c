package extractors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches extraction to the extractor registered for a
// file's type.
type Registry struct {
	byType map[domain.FileType]driven.Extractor
}

// NewRegistry creates a registry from the given extractors, keyed by
// their supported types. Later registrations win on conflict.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		byType: make(map[domain.FileType]driven.Extractor),
	}
	for _, e := range extractors {
		for _, t := range e.SupportedTypes() {
			r.byType[t] = e
		}
	}
	return r
}

// Extract selects the extractor for raw.Type and runs it.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawFile) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	extractor, ok := r.byType[raw.Type]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.Type)
	}

	return extractor.Extract(ctx, raw)
}
