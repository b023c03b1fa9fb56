package llm

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of Client for tests and local runs.
type MockClient struct{}

// NewMockClient creates a new mock client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Generate returns a canned Vietnamese reply echoing the question.
func (m *MockClient) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	return fmt.Sprintf("[MOCK] Đã nhận câu hỏi: %q. Đây là câu trả lời thử nghiệm của Dược Sĩ Hoàng.", truncate(prompt, 100)), nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
