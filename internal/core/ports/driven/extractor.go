package driven

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// Extractor converts a raw document of a specific format to plain text.
// Each supported format (PDF, DOC, DOCX) has one implementation.
type Extractor interface {
	// SupportedTypes returns the file types this extractor handles.
	SupportedTypes() []domain.FileType

	// Extract converts raw bytes to plain text.
	// It must not mutate the source file. A failure is scoped to the
	// one file: callers skip it and continue.
	Extract(ctx context.Context, raw *domain.RawFile) (string, error)
}

// ExtractorRegistry dispatches extraction to the extractor registered
// for a file's type.
type ExtractorRegistry interface {
	// Extract selects the extractor for raw.Type and runs it.
	// Returns domain.ErrUnsupportedType if no extractor is registered.
	Extract(ctx context.Context, raw *domain.RawFile) (string, error)
}
