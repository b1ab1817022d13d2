package assistant

import "context"

// GenerateRequest is one call to a text-generation endpoint.
type GenerateRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float32
}

// Generator produces a reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req GenerateRequest) (string, error)

// Generate calls f(ctx, req).
func (f GeneratorFunc) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	return f(ctx, req)
}
