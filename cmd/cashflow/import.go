package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/finloom/cashflow-copilot/internal/classify"
	"github.com/finloom/cashflow-copilot/internal/cli"
	"github.com/finloom/cashflow-copilot/internal/csvparse"
	"github.com/finloom/cashflow-copilot/internal/llm"
	"github.com/finloom/cashflow-copilot/internal/model"
	"github.com/finloom/cashflow-copilot/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a CSV or OFX file",
		Long: `Import financial transactions from an exported bank statement.

CSV files need 'date', 'amount', and 'merchant' columns. OFX/QFX statements
are read as exported. Every transaction is categorized on the way in and
duplicates are skipped automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("user", "u", "", "Username to import for")
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")
	cmd.Flags().Bool("no-llm", false, "Skip the LLM fallback for unmatched merchants")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	username, _ := cmd.Flags().GetString("user")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noLLM, _ := cmd.Flags().GetBool("no-llm")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := resolveUser(ctx, store, username)
	if err != nil {
		return err
	}

	transactions, err := parseStatement(path)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		slog.Info(cli.FormatWarning("No transactions found in file"))
		return nil
	}

	for i := range transactions {
		transactions[i].UserID = user.ID
	}

	slog.Info(cli.FormatTitle("Importing transactions"))
	slog.Info("Parsed statement", "file", filepath.Base(path), "transactions", len(transactions))

	classifier, err := buildClassifier(len(transactions), noLLM)
	if err != nil {
		return err
	}

	classified, err := classifier.ProcessTransactions(ctx, transactions)
	if err != nil {
		return fmt.Errorf("failed to classify transactions: %w", err)
	}

	for i := range classified {
		classified[i].Hash = classified[i].GenerateHash()
	}

	if dryRun {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		displayImportSummary(classified, len(classified))
		return nil
	}

	inserted, err := store.SaveTransactions(ctx, classified)
	if err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	slog.Info(cli.FormatSuccess("Import complete!"))
	displayImportSummary(classified, inserted)

	return nil
}

// parseStatement picks the parser by file extension.
func parseStatement(path string) ([]model.Transaction, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return csvparse.NewParser().Parse(f)
	case ".ofx", ".qfx":
		return ofx.NewParser().Parse(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q: expected .csv, .ofx, or .qfx", filepath.Ext(path))
	}
}

// buildClassifier assembles the rule classifier, with the LLM fallback and a
// progress bar attached.
func buildClassifier(total int, noLLM bool) (*classify.Classifier, error) {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Categorizing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)

	opts := []classify.Option{
		classify.WithProgress(func(done, _ int) {
			_ = bar.Set(done)
		}),
	}

	if !noLLM {
		client, err := createLLMClient()
		if err != nil {
			// Rules alone still produce a total classification.
			slog.Warn("LLM fallback unavailable, unmatched merchants will be filed as Other", "error", err)
		} else {
			opts = append(opts, classify.WithFallback(llm.NewCategorySuggester(client)))
		}
	}

	return classify.New(classify.DefaultRules(), opts...)
}

func displayImportSummary(transactions []model.Transaction, inserted int) {
	totalAmount := 0.0
	byCategory := make(map[model.Category]int)
	for _, tx := range transactions {
		totalAmount += tx.Amount
		byCategory[tx.Category]++
	}

	categories := make([]model.Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return byCategory[categories[i]] > byCategory[categories[j]] })

	content := fmt.Sprintf(`Transactions: %d
New: %d (duplicates skipped: %d)
Total amount: %s

By category:
`, len(transactions), inserted, len(transactions)-inserted, cli.FormatMoney(totalAmount))

	for _, c := range categories {
		content += fmt.Sprintf("  %s: %d\n", c, byCategory[c])
	}

	slog.Info(cli.RenderBox("Import Summary", content))
}
