package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
}

func TestSupportedTypes(t *testing.T) {
	extractor := New()
	assert.Equal(t, []domain.FileType{domain.FileTypePDF}, extractor.SupportedTypes())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

func TestExtract_NilFile(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_WithMockRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("Page one text.\n\nPage two text.\n")}
	extractor := NewWithRunner(runner)

	raw := &domain.RawFile{
		Path:    "/share/report.pdf",
		Name:    "report.pdf",
		Type:    domain.FileTypePDF,
		Content: []byte("%PDF-1.4 fake pdf content"),
	}

	text, err := extractor.Extract(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Page one text.\n\nPage two text.", text)
}

func TestExtract_ConverterFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1")}
	extractor := NewWithRunner(runner)

	raw := &domain.RawFile{
		Path:    "/share/corrupt.pdf",
		Name:    "corrupt.pdf",
		Type:    domain.FileTypePDF,
		Content: []byte("not really a pdf"),
	}

	_, err := extractor.Extract(context.Background(), raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrToolNotFound(t *testing.T) {
	assert.Error(t, ErrToolNotFound)
	assert.Contains(t, ErrToolNotFound.Error(), "pdftotext")
}
