package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
)

// stubEmbedder fails on demand.
type stubEmbedder struct {
	err        error
	dimensions int
	calls      int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return make([]float32, s.dimensions), nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int              { return s.dimensions }
func (s *stubEmbedder) ModelName() string            { return "stub-model" }
func (s *stubEmbedder) Ping(_ context.Context) error { return s.err }
func (s *stubEmbedder) Close() error                 { return nil }

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.EmbeddingService = (*Service)(nil)
}

func TestEmbed_PassThrough(t *testing.T) {
	inner := &stubEmbedder{dimensions: 4}
	svc := Wrap(inner)

	embedding, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, embedding, 4)
	assert.EqualValues(t, 0, svc.DegradedCount())
}

func TestEmbed_FallsBackOnFailure(t *testing.T) {
	inner := &stubEmbedder{dimensions: 8, err: errors.New("connection refused")}
	svc := Wrap(inner)

	embedding, err := svc.Embed(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, embedding, 8)
	assert.EqualValues(t, 1, svc.DegradedCount())

	// Components stay within the placeholder range.
	for _, v := range embedding {
		assert.GreaterOrEqual(t, v, float32(-0.5))
		assert.Less(t, v, float32(0.5))
	}
}

func TestEmbedBatch_DegradesPerText(t *testing.T) {
	inner := &stubEmbedder{dimensions: 4, err: errors.New("down")}
	svc := Wrap(inner)

	embeddings, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, embeddings, 3)
	assert.EqualValues(t, 3, svc.DegradedCount())
	for _, e := range embeddings {
		assert.Len(t, e, 4)
	}
}

func TestDelegation(t *testing.T) {
	inner := &stubEmbedder{dimensions: 16}
	svc := Wrap(inner)

	assert.Equal(t, 16, svc.Dimensions())
	assert.Equal(t, "stub-model", svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}
