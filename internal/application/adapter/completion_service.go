package adapter

import "context"

// CompletionService sends a prompt to a language model and returns its raw text reply.
type CompletionService interface {
	// Complete performs one blocking round-trip to the model.
	Complete(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the service is properly configured.
	IsAvailable() bool
}
