package advisor

import (
	"context"

	"github.com/finloom/cashflow-copilot/internal/llm"
)

// chatSystemPrompt keeps the assistant on financial topics.
const chatSystemPrompt = "You are CashGPT, a professional and friendly AI financial advisor. " +
	"You only answer questions related to personal finance, budgeting, saving, investing, " +
	"risk analysis, or financial planning. If a user asks anything not related to finance " +
	"(like skincare, entertainment, cooking, personal opinions, etc.), reply strictly with: " +
	"'I'm here to help with financial topics. Could you ask me something about budgeting, " +
	"saving, or investing?'"

// ChatSession is a role-tagged conversation with the advisor. Each Send is
// one synchronous completion over the full history.
type ChatSession struct {
	client  llm.Client
	history []llm.Message
}

// NewChatSession starts a session seeded with the advisor system prompt.
func NewChatSession(client llm.Client) *ChatSession {
	return &ChatSession{
		client: client,
		history: []llm.Message{
			{Role: llm.RoleSystem, Content: chatSystemPrompt},
		},
	}
}

// Send appends the user's message, requests a completion, and records the
// assistant reply. On failure the user turn is kept but no assistant turn is
// recorded, so the exchange can be retried.
func (s *ChatSession) Send(ctx context.Context, text string) (string, error) {
	s.history = append(s.history, llm.Message{Role: llm.RoleUser, Content: text})

	reply, err := s.client.Complete(ctx, s.history)
	if err != nil {
		return "", err
	}

	s.history = append(s.history, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

// History returns a copy of the conversation so far, system prompt included.
func (s *ChatSession) History() []llm.Message {
	return append([]llm.Message(nil), s.history...)
}
