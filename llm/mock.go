package llm

import (
	"context"
	"sync"
)

// MockCompleter is a mock completion service for testing.
// It is safe for concurrent use; the swarm engine calls it from many workers.
type MockCompleter struct {
	mu         sync.Mutex
	response   string
	tokensUsed int
	err        error
	callCount  int
	lastConv   Conversation

	// CompleteFunc can be set for custom behavior; when set it takes
	// precedence over the canned response/error.
	CompleteFunc func(ctx context.Context, conv Conversation) (*Completion, error)
}

// NewMockCompleter creates a new mock completer.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// SetResponse sets the canned response content and reported token usage.
func (m *MockCompleter) SetResponse(content string, tokensUsed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = content
	m.tokensUsed = tokensUsed
}

// SetError sets an error to return.
func (m *MockCompleter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// CallCount returns the number of Complete calls made.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastConversation returns the conversation from the most recent call.
func (m *MockCompleter) LastConversation() Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastConv
}

// Reset resets the call count.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
}

// Complete implements the Completer interface.
func (m *MockCompleter) Complete(ctx context.Context, conv Conversation) (*Completion, error) {
	m.mu.Lock()
	m.callCount++
	m.lastConv = conv
	fn := m.CompleteFunc
	err := m.err
	response := m.response
	tokens := m.tokensUsed
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, conv)
	}

	if err != nil {
		return nil, err
	}

	return &Completion{
		Message: Message{
			Role:    RoleAssistant,
			Content: response,
		},
		TokensUsed: tokens,
	}, nil
}
