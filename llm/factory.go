package llm

import (
	"context"
	"log"
	"os"
)

const (
	// EnvDuocsiMode is the environment variable name for mode selection.
	EnvDuocsiMode = "DUOCSI_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewLLMClient creates a model client based on the DUOCSI_MODE environment
// variable. If DUOCSI_MODE=MOCK, returns a MockClient; otherwise a Gemini
// client.
func NewLLMClient(ctx context.Context, apiKey, modelName string) (Client, error) {
	if os.Getenv(EnvDuocsiMode) == ModeMock {
		log.Println("DUOCSI_MODE=MOCK detected, using mock LLM client")
		return NewMockClient(), nil
	}

	return NewGeminiClient(ctx, apiKey, modelName)
}
