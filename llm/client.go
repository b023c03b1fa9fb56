// Package llm provides an abstraction for the generative model client.
package llm

import "context"

// GenerationConfig is the fixed configuration for one generation request.
// It is supplied by the orchestrator's static configuration, never by the
// caller of a chat turn.
type GenerationConfig struct {
	SystemInstruction string
	Temperature       float32
	MaxOutputTokens   int32
}

// Client defines the single capability the chat service needs: given a
// prompt and a generation config, return generated text or fail.
type Client interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// Ensure implementations satisfy the interface.
var (
	_ Client = (*GeminiClient)(nil)
	_ Client = (*MockClient)(nil)
)
