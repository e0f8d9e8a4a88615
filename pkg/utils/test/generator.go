package testutils

import (
	"context"
	"fmt"
	"sync"
)

// MockGenerator is a test generator that returns a canned answer and
// records every prompt it receives.
type MockGenerator struct {
	// Answer is returned by Generate.
	Answer string

	// Fail forces Generate to error.
	Fail bool

	mu      sync.Mutex
	prompts []string
}

func NewMockGenerator(answer string) *MockGenerator {
	return &MockGenerator{Answer: answer}
}

func (m *MockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Fail {
		return "", fmt.Errorf("mock generation failure")
	}
	return m.Answer, nil
}

// Prompts returns the prompts received so far, in call order.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

func (m *MockGenerator) Close() error {
	return nil
}
