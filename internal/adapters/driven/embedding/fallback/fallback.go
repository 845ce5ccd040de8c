// Package fallback wraps an embedding service with degraded-mode
// behaviour: when the underlying service fails, a random vector of the
// service's dimensionality is returned instead of an error. Ingestion
// and search keep working with meaningless similarity scores rather
// than stopping entirely.
package fallback

import (
	"context"
	"math/rand"
	"sync/atomic"

	"github.com/custodia-labs/docdex-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// Service decorates an embedding service with random-vector fallback.
type Service struct {
	inner    driven.EmbeddingService
	degraded atomic.Int64
}

// Wrap decorates the given embedding service.
func Wrap(inner driven.EmbeddingService) *Service {
	return &Service{inner: inner}
}

// Embed delegates to the wrapped service, substituting a random vector
// when it fails.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	embedding, err := s.inner.Embed(ctx, text)
	if err != nil {
		s.degraded.Add(1)
		logger.Warn("embedding service unavailable, using random fallback vector: %v", err)
		return randomVector(s.inner.Dimensions()), nil
	}
	return embedding, nil
}

// EmbedBatch embeds each text individually so a single failure only
// degrades that text, not the whole batch.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// DegradedCount returns how many embeddings were generated in degraded
// mode since startup.
func (s *Service) DegradedCount() int64 {
	return s.degraded.Load()
}

// Dimensions returns the wrapped service's vector size.
func (s *Service) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the wrapped service's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the wrapped service.
func (s *Service) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close delegates to the wrapped service.
func (s *Service) Close() error {
	return s.inner.Close()
}

// randomVector produces a placeholder embedding with components in
// [-0.5, 0.5).
func randomVector(dimensions int) []float32 {
	vector := make([]float32, dimensions)
	for i := range vector {
		vector[i] = rand.Float32() - 0.5
	}
	return vector
}
