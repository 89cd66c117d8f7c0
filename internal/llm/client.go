// Package llm provides language model clients for category suggestions and
// advisory text generation. It supports Anthropic and OpenAI-compatible APIs
// (including Together) behind a single interface.
package llm

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged conversation turn.
type Message struct {
	Role    string
	Content string
}

// Client defines the interface for LLM providers. Each call is a single
// synchronous attempt; callers treat failures as an opaque boundary error and
// degrade to fallback behavior.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// UserMessage is a convenience constructor for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}
