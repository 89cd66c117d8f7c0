package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finloom/cashflow-copilot/internal/advisor"
	"github.com/finloom/cashflow-copilot/internal/tui"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the financial advisor",
		Long: `Open an interactive chat session with CashGPT, the financial advisor.
The conversation keeps its context for the life of the session.`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := createLLMClient()
	if err != nil {
		return fmt.Errorf("chat needs an LLM provider: %w", err)
	}

	session := advisor.NewChatSession(client)
	return tui.Run(ctx, session)
}
