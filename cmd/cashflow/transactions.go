package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/finloom/cashflow-copilot/internal/cli"
	"github.com/finloom/cashflow-copilot/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List imported transactions",
		RunE:  runTransactions,
	}

	cmd.Flags().StringP("user", "u", "", "Username to list for")
	cmd.Flags().IntP("limit", "n", 0, "Show at most N transactions (0 = all)")
	cmd.Flags().Bool("summary", false, "Show category totals instead of individual transactions")

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	username, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")
	summaryOnly, _ := cmd.Flags().GetBool("summary")

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

	if summaryOnly {
		fmt.Fprintln(cmd.OutOrStdout(), renderCategorySummary(transactions))
		return nil
	}

	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.TransactionTable(transactions))
	return nil
}

func renderCategorySummary(transactions []model.Transaction) string {
	if len(transactions) == 0 {
		return cli.SubtleStyle.Render("No transactions found.")
	}

	sums := make(map[model.Category]float64)
	counts := make(map[model.Category]int)
	total := 0.0
	for _, tx := range transactions {
		sums[tx.Category] += tx.Amount
		counts[tx.Category]++
		total += tx.Amount
	}

	categories := make([]model.Category, 0, len(sums))
	for c := range sums {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return sums[categories[i]] > sums[categories[j]] })

	content := fmt.Sprintf("%-15s %10s %6s %10s %8s\n", "CATEGORY", "TOTAL", "COUNT", "AVG", "SHARE")
	for _, c := range categories {
		content += fmt.Sprintf("%-15s %10s %6d %10s %7.1f%%\n",
			c, cli.FormatMoney(sums[c]), counts[c],
			cli.FormatMoney(sums[c]/float64(counts[c])), sums[c]/total*100)
	}
	content += fmt.Sprintf("\n%-15s %10s", "Total", cli.FormatMoney(total))

	return cli.RenderBox("Spending by Category", content)
}
