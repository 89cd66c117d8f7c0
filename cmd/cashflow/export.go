package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/finloom/cashflow-copilot/internal/cli"
	"github.com/finloom/cashflow-copilot/internal/common"
	"github.com/finloom/cashflow-copilot/internal/config"
	"github.com/finloom/cashflow-copilot/internal/risk"
	"github.com/finloom/cashflow-copilot/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a spending report to Google Sheets",
		Long: `Export your transactions, category totals, and latest risk assessment
to a Google Sheets spreadsheet. Requires Google Sheets credentials; see
the sheets section of the config file.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("user", "u", "", "Username to export")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
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
	if len(transactions) == 0 {
		slog.Info(cli.FormatWarning("Nothing to export, import transactions first"))
		return nil
	}

	byCategory, err := store.GetCategorySummary(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load category summary: %w", err)
	}

	totalSpend := 0.0
	for _, amount := range byCategory {
		totalSpend += amount
	}

	// Use the stored assessment if there is one, otherwise compute fresh.
	report := &sheets.Report{
		Username:     user.Username,
		Transactions: transactions,
		ByCategory:   byCategory,
		TotalSpend:   totalSpend,
	}
	latest, err := store.GetLatestAssessment(ctx, user.ID)
	switch {
	case err == nil:
		report.RiskLevel = latest.Level
		report.RiskReason = latest.Reason
	case errors.Is(err, common.ErrNotFound):
		assessment := risk.Evaluate(user.MonthlyIncome, transactions)
		report.RiskLevel = assessment.Level
		report.RiskReason = assessment.Reason()
	default:
		return fmt.Errorf("failed to load risk assessment: %w", err)
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("sheets export not configured: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, report); err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess("Report exported to Google Sheets"))
	return nil
}
