package chat

import (
	"context"
	"sync"
)

// MockProvider is a Provider for tests. It answers immediately with Content
// or Err, or blocks until its context is done when Block is set.
type MockProvider struct {
	Content string
	Err     error
	Block   bool

	mu         sync.Mutex
	calls      int
	lastPrompt string
}

// Ensure MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)

func (m *MockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastPrompt = prompt
	m.mu.Unlock()

	if m.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Content, nil
}

// Calls returns how many times Complete was called
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt of the most recent call
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}
