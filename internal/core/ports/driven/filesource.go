package driven

import (
	"context"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

// FileSource yields document files from the watched folder.
type FileSource interface {
	// Validate checks the folder exists and is readable.
	// Returns nil if ready to scan, an error describing the problem
	// otherwise.
	Validate(ctx context.Context) error

	// Walk traverses the folder recursively and sends every file with
	// a supported extension on the returned channel, in traversal
	// order. Both channels are closed when the walk finishes. Per-file
	// read failures are sent on the error channel without stopping the
	// walk.
	Walk(ctx context.Context) (<-chan domain.RawFile, <-chan error)

	// Watch listens for file change events under the folder and sends
	// the affected path. Used to trigger rescans; the event payload
	// carries no content.
	Watch(ctx context.Context) (<-chan string, error)

	// Close releases resources.
	Close() error
}
