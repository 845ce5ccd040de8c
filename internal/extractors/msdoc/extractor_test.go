package msdoc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// mockRunner returns canned output per command name.
type mockRunner struct {
	outputs map[string][]byte
	errs    map[string]error
	calls   []string
}

func (m *mockRunner) Run(_ context.Context, name string, _ ...string) ([]byte, error) {
	m.calls = append(m.calls, name)
	if err, ok := m.errs[name]; ok && err != nil {
		return nil, err
	}
	return m.outputs[name], nil
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

func TestSupportedTypes(t *testing.T) {
	extractor := New()
	assert.Equal(t, []domain.FileType{domain.FileTypeDOC}, extractor.SupportedTypes())
}

func TestExtract_NilFile(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_AntiwordSucceeds(t *testing.T) {
	runner := &mockRunner{
		outputs: map[string][]byte{"antiword": []byte("Memo text.\n")},
	}
	extractor := NewWithRunner(runner)

	text, err := extractor.Extract(context.Background(), &domain.RawFile{
		Path:    "/share/memo.doc",
		Name:    "memo.doc",
		Type:    domain.FileTypeDOC,
		Content: []byte{0xd0, 0xcf, 0x11, 0xe0},
	})
	require.NoError(t, err)
	assert.Equal(t, "Memo text.", text)
	assert.Equal(t, []string{"antiword"}, runner.calls)
}

func TestExtract_FallsBackToCatdoc(t *testing.T) {
	runner := &mockRunner{
		outputs: map[string][]byte{"catdoc": []byte("Recovered text.\n")},
		errs:    map[string]error{"antiword": errors.New("exit status 1")},
	}
	extractor := NewWithRunner(runner)

	text, err := extractor.Extract(context.Background(), &domain.RawFile{
		Path:    "/share/memo.doc",
		Name:    "memo.doc",
		Type:    domain.FileTypeDOC,
		Content: []byte{0xd0, 0xcf, 0x11, 0xe0},
	})
	require.NoError(t, err)
	assert.Equal(t, "Recovered text.", text)
	assert.Equal(t, []string{"antiword", "catdoc"}, runner.calls)
}

func TestExtract_BothConvertersFail(t *testing.T) {
	runner := &mockRunner{
		errs: map[string]error{
			"antiword": errors.New("exit status 1"),
			"catdoc":   errors.New("exit status 2"),
		},
	}
	extractor := NewWithRunner(runner)

	_, err := extractor.Extract(context.Background(), &domain.RawFile{
		Path:    "/share/broken.doc",
		Name:    "broken.doc",
		Type:    domain.FileTypeDOC,
		Content: []byte("garbage"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "antiword")
	assert.Contains(t, instructions, "catdoc")
}
