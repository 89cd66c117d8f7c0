package portfolio

import (
	"context"
	"sync"
)

// MockQuoteProvider is a test implementation of QuoteProvider with canned
// quotes and per-ticker errors.
type MockQuoteProvider struct {
	Quotes map[string]Quote
	Errors map[string]error
	calls  []string
	mu     sync.Mutex
}

// GetQuote returns the canned quote or error for a ticker.
func (m *MockQuoteProvider) GetQuote(_ context.Context, ticker string) (Quote, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ticker)
	m.mu.Unlock()

	if err, ok := m.Errors[ticker]; ok {
		return Quote{}, err
	}
	return m.Quotes[ticker], nil
}

// Calls returns the tickers requested so far.
func (m *MockQuoteProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
