package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finloom/cashflow-copilot/internal/cli"
	"github.com/finloom/cashflow-copilot/internal/model"
	"github.com/finloom/cashflow-copilot/internal/portfolio"
	"github.com/finloom/cashflow-copilot/internal/quotes"
)

func portfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Track investment holdings",
	}

	cmd.AddCommand(portfolioAddCmd())
	cmd.AddCommand(portfolioShowCmd())

	return cmd
}

func portfolioAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ticker>",
		Short: "Add a holding to your portfolio",
		Args:  cobra.ExactArgs(1),
		RunE:  runPortfolioAdd,
	}

	cmd.Flags().StringP("user", "u", "", "Username to add for")
	cmd.Flags().Float64P("quantity", "q", 0, "Number of shares")
	cmd.Flags().Float64P("price", "p", 0, "Purchase price per share")
	cmd.Flags().StringP("date", "d", "", "Purchase date (format: 2006-01-02, default today)")

	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func runPortfolioAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	username, _ := cmd.Flags().GetString("user")
	quantity, _ := cmd.Flags().GetFloat64("quantity")
	price, _ := cmd.Flags().GetFloat64("price")
	dateStr, _ := cmd.Flags().GetString("date")

	purchaseDate := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid purchase date: %w", err)
		}
		purchaseDate = parsed
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := resolveUser(ctx, store, username)
	if err != nil {
		return err
	}

	holding := &model.Holding{
		UserID:        user.ID,
		Ticker:        args[0],
		Quantity:      quantity,
		PurchasePrice: price,
		PurchaseDate:  purchaseDate,
	}

	if _, err := store.AddHolding(ctx, holding); err != nil {
		return fmt.Errorf("failed to add holding: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Added %.2f %s at %s",
		quantity, holding.Ticker, cli.FormatMoney(price))))

	return nil
}

func portfolioShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show portfolio with current valuations",
		RunE:  runPortfolioShow,
	}

	cmd.Flags().StringP("user", "u", "", "Username to show")

	return cmd
}

func runPortfolioShow(cmd *cobra.Command, _ []string) error {
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

	holdings, err := store.GetHoldings(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load holdings: %w", err)
	}
	if len(holdings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No holdings found. Add one with 'cashflow portfolio add'."))
		return nil
	}

	provider, err := createQuoteProvider()
	if err != nil {
		return err
	}

	valuator := portfolio.NewValuator(provider, slog.Default())
	valued := valuator.Value(ctx, holdings)
	summary := portfolio.Summarize(valued)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.HoldingsTable(valued))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total investment: %s\n", cli.FormatMoney(summary.TotalInvestment))
	fmt.Fprintf(out, "Current value:    %s\n", cli.FormatMoney(summary.CurrentValue))
	fmt.Fprintf(out, "Gain/loss:        %s (%.2f%%)\n",
		cli.FormatGainLoss(summary.TotalGainLoss), summary.TotalGainLossPct)

	return nil
}

// createQuoteProvider builds the market data client from config.
func createQuoteProvider() (portfolio.QuoteProvider, error) {
	apiKey := viper.GetString("quotes.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("STOCKDATA_API_KEY")
	}

	client, err := quotes.NewClient(quotes.Config{
		BaseURL: viper.GetString("quotes.base_url"),
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("quotes client not configured, set quotes.api_key or STOCKDATA_API_KEY: %w", err)
	}
	return client, nil
}
