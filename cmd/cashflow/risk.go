package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finloom/cashflow-copilot/internal/cli"
	"github.com/finloom/cashflow-copilot/internal/risk"
)

func riskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Assess financial risk from spending patterns",
		Long: `Assess financial risk from your imported transactions. The assessment
looks at your expense-to-income ratio and category concentration, and
recommends a savings buffer. Each run is saved to your risk history.`,
		RunE: runRisk,
	}

	cmd.Flags().StringP("user", "u", "", "Username to assess")
	cmd.Flags().Bool("history", false, "Show past assessments instead of running a new one")

	return cmd
}

func runRisk(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	username, _ := cmd.Flags().GetString("user")
	showHistory, _ := cmd.Flags().GetBool("history")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := resolveUser(ctx, store, username)
	if err != nil {
		return err
	}

	if showHistory {
		records, histErr := store.GetAssessmentHistory(ctx, user.ID)
		if histErr != nil {
			return fmt.Errorf("failed to load assessment history: %w", histErr)
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No assessments yet."))
			return nil
		}
		for _, rec := range records {
			level := cli.RiskStyle(rec.Level).Render(string(rec.Level))
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-6s  %s\n",
				rec.AssessedAt.Format("2006-01-02 15:04"), level, rec.Reason)
		}
		return nil
	}

	transactions, err := store.GetTransactions(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	assessment := risk.Evaluate(user.MonthlyIncome, transactions)

	if _, err := store.SaveAssessment(ctx, user.ID, assessment); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	level := cli.RiskStyle(assessment.Level).Render(string(assessment.Level))

	var b strings.Builder
	fmt.Fprintf(&b, "Risk level: %s\n", level)
	fmt.Fprintf(&b, "Reason: %s\n", assessment.Reason())
	fmt.Fprintf(&b, "Expense ratio: %.0f%% of income\n", assessment.ExpenseRatio*100)
	fmt.Fprintf(&b, "Recommended savings buffer: %s\n", cli.FormatMoney(assessment.SavingsBuffer))
	b.WriteString("\nRecommendations:\n")
	for _, rec := range risk.Recommendations(assessment) {
		fmt.Fprintf(&b, "  • %s\n", rec)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Risk Assessment", b.String()))
	return nil
}
