// Package pdf extracts plain text from PDF documents using the
// external pdftotext tool (poppler-utils).
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrToolNotFound indicates pdftotext is not installed.
var ErrToolNotFound = errors.New("pdftotext not found in PATH")

// Extractor converts PDF bytes to plain text via pdftotext.
// Pages are concatenated in order.
type Extractor struct {
	runner extractors.CommandRunner
}

// New creates a PDF extractor using the real pdftotext binary.
func New() *Extractor {
	return NewWithRunner(extractors.ExecRunner{})
}

// NewWithRunner creates a PDF extractor with a custom command runner.
// Used by tests to avoid shelling out.
func NewWithRunner(runner extractors.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedTypes returns the file types this extractor handles.
func (e *Extractor) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Extract writes the raw bytes to a temporary file and converts them
// with pdftotext. The source file is never touched.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	tmp, err := os.CreateTemp("", "docdex-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw.Content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	// "-" sends the extracted text to stdout.
	out, err := e.runner.Run(ctx, "pdftotext", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext %s: %v", domain.ErrExtractionFailed, filepath.Base(raw.Path), err)
	}

	return strings.TrimSpace(string(out)), nil
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for PDF extraction.

  macOS:  brew install poppler
  Debian: apt install poppler-utils
  Fedora: dnf install poppler-utils`
}
