package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FileType identifies a supported office document format.
type FileType string

// Supported document formats.
const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOC  FileType = "doc"
	FileTypeDOCX FileType = "docx"
)

// FileTypeFromPath derives the file type from a path's extension.
// Returns an empty FileType for unsupported extensions.
func FileTypeFromPath(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FileTypePDF
	case ".doc":
		return FileTypeDOC
	case ".docx":
		return FileTypeDOCX
	default:
		return ""
	}
}

// IsValid reports whether the file type is one of the supported formats.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypePDF, FileTypeDOC, FileTypeDOCX:
		return true
	}
	return false
}

// Document represents an indexed office document with metadata.
// It is the canonical representation after text extraction.
type Document struct {
	// ID is the unique identifier, derived from the content hash
	// at first ingestion.
	ID string

	// Filename is the base name within the watched folder.
	// At most one live document exists per filename.
	Filename string

	// Filepath is the full path the document was read from.
	Filepath string

	// Size is the file size in bytes at scan time.
	Size int64

	// ModifiedTime is the filesystem mtime at scan time.
	ModifiedTime time.Time

	// Hash is the content hash of the raw bytes, used for change
	// detection and dedup. At most one live document per hash.
	Hash string

	// Type is the document format.
	Type FileType

	// Content is the full extracted text. Empty if extraction failed.
	Content string

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last written.
	UpdatedAt time.Time
}

// Chunk represents an embedded unit of a document's extracted text.
// Documents are split into overlapping chunks for retrieval.
type Chunk struct {
	// ID is deterministic, derived from (DocumentID, Index).
	ID string

	// DocumentID links to the owning Document. Chunks are owned
	// exclusively and die with the document.
	DocumentID string

	// Index is the 0-based sequence position within the document.
	Index int

	// Content is the chunk text.
	Content string

	// Embedding is the fixed-length vector representation.
	Embedding []float32

	// CreatedAt is when the chunk was written.
	CreatedAt time.Time
}

// ChunkID builds the deterministic chunk identifier for a document
// and chunk index.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, index)
}

// RawFile represents a file read from the watched folder before
// text extraction.
type RawFile struct {
	// Path is the full filesystem path.
	Path string

	// Name is the base filename.
	Name string

	// Size is the file size in bytes.
	Size int64

	// ModifiedTime is the filesystem mtime.
	ModifiedTime time.Time

	// Type is the document format derived from the extension.
	Type FileType

	// Content is the raw bytes.
	Content []byte
}
