package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finloom/cashflow-copilot/internal/advisor"
	"github.com/finloom/cashflow-copilot/internal/llm"
)

func newTestModel(client llm.Client) Model {
	m := NewModel(context.Background(), advisor.NewChatSession(client))
	// Simulate the initial window size message.
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestEnterSendsQuestion(t *testing.T) {
	m := newTestModel(&llm.MockClient{Reply: "Save more."})

	m.input.SetValue("How do I save?")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	require.Len(t, m.turns, 1)
	assert.Equal(t, "You", m.turns[0].speaker)
	assert.Equal(t, "How do I save?", m.turns[0].content)
	assert.Empty(t, m.input.Value())
}

func TestEmptyInputIgnored(t *testing.T) {
	m := newTestModel(&llm.MockClient{})

	m.input.SetValue("   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.False(t, m.waiting)
	assert.Empty(t, m.turns)
}

func TestReplyAppended(t *testing.T) {
	m := newTestModel(&llm.MockClient{})
	m.waiting = true

	updated, _ := m.Update(replyMsg{content: "Budget first."})
	m = updated.(Model)

	assert.False(t, m.waiting)
	require.Len(t, m.turns, 1)
	assert.Equal(t, "CashGPT", m.turns[0].speaker)
	assert.Equal(t, "Budget first.", m.turns[0].content)
}

func TestReplyErrorShown(t *testing.T) {
	m := newTestModel(&llm.MockClient{})
	m.waiting = true

	updated, _ := m.Update(replyErrMsg{err: errors.New("provider down")})
	m = updated.(Model)

	assert.False(t, m.waiting)
	require.Len(t, m.turns, 1)
	assert.True(t, m.turns[0].failed)
	assert.Contains(t, m.turns[0].content, "provider down")
}

func TestEscQuits(t *testing.T) {
	m := newTestModel(&llm.MockClient{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.View())
}
