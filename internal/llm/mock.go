package llm

import (
	"context"
	"sync"
)

// MockClient is a test implementation of Client with a scripted reply.
type MockClient struct {
	Reply string
	Err   error
	calls [][]Message
	mu    sync.Mutex
}

// Complete records the request and returns the scripted reply or error.
func (m *MockClient) Complete(_ context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]Message(nil), messages...))
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Calls returns the recorded requests.
func (m *MockClient) Calls() [][]Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastCall returns the most recent request, or nil.
func (m *MockClient) LastCall() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}
