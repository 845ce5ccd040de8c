package driven

import "context"

// LLMService generates natural-language answers from retrieved context.
// This is an optional service - when nil, question answering is disabled.
type LLMService interface {
	// Answer generates a response to the question grounded in the
	// supplied document context.
	Answer(ctx context.Context, question, context string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
