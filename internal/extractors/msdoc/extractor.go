// Package msdoc extracts plain text from legacy binary .doc files
// using the external antiword tool, falling back to catdoc when
// antiword is unavailable or fails.
package msdoc

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

// ErrToolNotFound indicates neither antiword nor catdoc is installed.
var ErrToolNotFound = errors.New("neither antiword nor catdoc found in PATH")

// Extractor converts binary .doc bytes to plain text via antiword,
// with catdoc as a fallback converter.
type Extractor struct {
	runner extractors.CommandRunner
}

// New creates a .doc extractor using the real converter binaries.
func New() *Extractor {
	return NewWithRunner(extractors.ExecRunner{})
}

// NewWithRunner creates a .doc extractor with a custom command runner.
// Used by tests to avoid shelling out.
func NewWithRunner(runner extractors.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedTypes returns the file types this extractor handles.
func (e *Extractor) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeDOC}
}

// Extract writes the raw bytes to a temporary file and converts them
// with antiword, retrying with catdoc if antiword fails.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	tmp, err := os.CreateTemp("", "docdex-*.doc")
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

	out, antiwordErr := e.runner.Run(ctx, "antiword", tmp.Name())
	if antiwordErr == nil {
		return strings.TrimSpace(string(out)), nil
	}

	out, catdocErr := e.runner.Run(ctx, "catdoc", tmp.Name())
	if catdocErr == nil {
		return strings.TrimSpace(string(out)), nil
	}

	return "", fmt.Errorf("%w: %s: antiword: %v, catdoc: %v",
		domain.ErrExtractionFailed, filepath.Base(raw.Path), antiwordErr, catdocErr)
}

// CheckAvailable reports whether at least one converter is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("antiword"); err == nil {
		return nil
	}
	if _, err := exec.LookPath("catdoc"); err == nil {
		return nil
	}
	return ErrToolNotFound
}

// InstallInstructions returns platform hints for installing a converter.
func InstallInstructions() string {
	return `antiword or catdoc is required for legacy .doc extraction.

  macOS:  brew install antiword
  Debian: apt install antiword
  Fedora: dnf install catdoc`
}
