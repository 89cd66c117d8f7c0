package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finloom/cashflow-copilot/internal/advisor"
	"github.com/finloom/cashflow-copilot/internal/cli"
	"github.com/finloom/cashflow-copilot/internal/risk"
)

func adviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Get personalized financial advice",
		Long: `Generate personalized financial advice from your spending profile.
The advisor sees your income, expense breakdown, and current risk level.`,
		RunE: runAdvise,
	}

	cmd.Flags().StringP("user", "u", "", "Username to advise")

	return cmd
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	username, _ := cmd.Flags().GetString("user")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := resolveUser(ctx, store, username)
	if err != nil {
		return err
	}

	transactions, err := store.GetTransactions(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	assessment := risk.Evaluate(user.MonthlyIncome, transactions)

	client, err := createLLMClient()
	if err != nil {
		return err
	}

	composer := advisor.New(client, slog.Default())

	advice, err := composer.GenerateAdvice(ctx, user.MonthlyIncome, transactions, assessment.Level)
	if err != nil {
		slog.Warn("advice generation failed", "error", err)
		advice = advisor.FallbackMessage
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderBox("Financial Advice", advice))

	if insights := composer.Insights(transactions); len(insights) > 0 {
		var b strings.Builder
		for _, insight := range insights {
			fmt.Fprintf(&b, "• %s\n", insight)
		}
		fmt.Fprintln(out, cli.RenderBox("Spending Insights", b.String()))
	}

	return nil
}
