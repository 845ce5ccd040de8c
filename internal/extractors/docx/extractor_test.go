package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// buildDocx creates a minimal in-memory docx archive with the given
// document.xml body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

func TestSupportedTypes(t *testing.T) {
	extractor := New()
	assert.Equal(t, []domain.FileType{domain.FileTypeDOCX}, extractor.SupportedTypes())
}

func TestExtract_NilFile(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_Paragraphs(t *testing.T) {
	content := buildDocx(t, `<?xml version="1.0"?>
<document>
  <body>
    <p><r><t>First paragraph.</t></r></p>
    <p><r><t>Second </t></r><r><t>paragraph.</t></r></p>
  </body>
</document>`)

	extractor := New()
	text, err := extractor.Extract(context.Background(), &domain.RawFile{
		Path:    "/share/notes.docx",
		Name:    "notes.docx",
		Type:    domain.FileTypeDOCX,
		Content: content,
	})
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtract_NotAZip(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), &domain.RawFile{
		Path:    "/share/bogus.docx",
		Name:    "bogus.docx",
		Type:    domain.FileTypeDOCX,
		Content: []byte("this is not a zip archive"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	extractor := New()
	_, err = extractor.Extract(context.Background(), &domain.RawFile{
		Path:    "/share/empty.docx",
		Name:    "empty.docx",
		Type:    domain.FileTypeDOCX,
		Content: buf.Bytes(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
