// Package tui provides the interactive chat interface built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finloom/cashflow-copilot/internal/advisor"
)

var (
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2ECC71"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1D3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type replyMsg struct {
	content string
}

type replyErrMsg struct {
	err error
}

// chatTurn is one rendered exchange in the transcript.
type chatTurn struct {
	speaker string
	content string
	failed  bool
}

// Model is the bubbletea model for the chat interface.
type Model struct {
	ctx      context.Context
	session  *advisor.ChatSession
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	turns    []chatTurn
	width    int
	height   int
	waiting  bool
	ready    bool
	quitting bool
}

// NewModel creates a chat model over a session.
func NewModel(ctx context.Context, session *advisor.ChatSession) Model {
	input := textinput.New()
	input.Placeholder = "Ask a money question..."
	input.Focus()
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantStyle

	return Model{
		ctx:     ctx,
		session: session,
		input:   input,
		spinner: sp,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.turns = append(m.turns, chatTurn{speaker: "You", content: question})
			m.input.Reset()
			m.waiting = true
			m.refreshViewport()
			return m, tea.Batch(m.spinner.Tick, m.sendQuestion(question))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.refreshViewport()

	case replyMsg:
		m.waiting = false
		m.turns = append(m.turns, chatTurn{speaker: "CashGPT", content: msg.content})
		m.refreshViewport()

	case replyErrMsg:
		m.waiting = false
		m.turns = append(m.turns, chatTurn{
			speaker: "CashGPT",
			content: fmt.Sprintf("Something went wrong: %v", msg.err),
			failed:  true,
		})
		m.refreshViewport()

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the chat interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var footer string
	if m.waiting {
		footer = m.spinner.View() + " thinking..."
	} else {
		footer = m.input.View()
	}

	help := helpStyle.Render("enter: send • esc: quit")

	return m.viewport.View() + "\n" + footer + "\n" + help
}

// sendQuestion runs the chat turn off the UI loop.
func (m Model) sendQuestion(question string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.session.Send(m.ctx, question)
		if err != nil {
			return replyErrMsg{err: err}
		}
		return replyMsg{content: reply}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	b.WriteString(assistantStyle.Render("CashGPT") + ": Hi! Ask me anything about your finances.\n\n")

	for _, turn := range m.turns {
		label := assistantStyle.Render(turn.speaker)
		if turn.speaker == "You" {
			label = userStyle.Render(turn.speaker)
		}
		content := turn.content
		if turn.failed {
			content = errorStyle.Render(content)
		}
		b.WriteString(label + ": " + content + "\n\n")
	}

	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(b.String()))
	m.viewport.GotoBottom()
}

// Run starts the chat interface and blocks until the user quits.
func Run(ctx context.Context, session *advisor.ChatSession) error {
	program := tea.NewProgram(NewModel(ctx, session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat interface failed: %w", err)
	}
	return nil
}
