package extraction

import "context"

// Request is a single generation request. Image, when set, holds PNG bytes.
// Schema, when set, constrains the response to JSON matching the schema.
type Request struct {
	Prompt string
	Image  []byte
	Schema *Schema
}

// Generator defines the interface for text generation backends
type Generator interface {
	// Generate sends one request and returns the raw text response
	Generate(ctx context.Context, req Request) (string, error)
	// Close closes the generator and releases resources
	Close() error
}
