package driving

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// Ingestor runs the ingestion pipeline over the watched folder.
type Ingestor interface {
	// Scan walks the folder once: fingerprints each file, skips
	// unchanged content, replaces edited files, and writes new
	// documents and chunk embeddings to the store.
	//
	// At most one scan runs at a time. A scan started while another is
	// running returns zero stats immediately without touching the
	// store. Per-file failures are counted, never fatal.
	Scan(ctx context.Context) (domain.ScanStats, error)

	// Status returns the pipeline's current state.
	Status() domain.ScanStatus
}
