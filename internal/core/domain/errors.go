package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Point lookups return this rather than a raw store error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScanInProgress indicates a scan is already running.
	// At most one scan runs at a time.
	ErrScanInProgress = errors.New("scan in progress")

	// ErrUnsupportedType indicates a file format no extractor handles.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrExtractionFailed indicates text extraction failed for a file.
	// Recovered locally: the file is skipped and the scan continues.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Semantic retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Question answering is disabled; plain search still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
