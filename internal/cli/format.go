package cli

import (
	"fmt"
	"strings"

	"github.com/finloom/cashflow-copilot/internal/model"
)

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatMoney formats an amount as dollars with two decimal places.
func FormatMoney(amount float64) string {
	return formatMoney(amount)
}

// TransactionTable renders transactions as an aligned text table.
func TransactionTable(transactions []model.Transaction) string {
	if len(transactions) == 0 {
		return SubtleStyle.Render("No transactions found.")
	}

	header := fmt.Sprintf("%-12s %-30s %-15s %10s", "DATE", "MERCHANT", "CATEGORY", "AMOUNT")
	rows := []string{TableHeaderStyle.Render(header)}

	for _, txn := range transactions {
		merchant := txn.Merchant
		if len(merchant) > 30 {
			merchant = merchant[:27] + "..."
		}
		rows = append(rows, fmt.Sprintf("%-12s %-30s %-15s %10s",
			txn.Date.Format("2006-01-02"),
			merchant,
			txn.Category,
			formatMoney(txn.Amount),
		))
	}

	return strings.Join(rows, "\n")
}

// HoldingsTable renders valued portfolio holdings as an aligned text table.
func HoldingsTable(holdings []model.ValuedHolding) string {
	if len(holdings) == 0 {
		return SubtleStyle.Render("No holdings found.")
	}

	header := fmt.Sprintf("%-8s %10s %12s %12s %12s %12s", "TICKER", "QTY", "BUY PRICE", "PRICE", "VALUE", "GAIN/LOSS")
	rows := []string{TableHeaderStyle.Render(header)}

	for _, h := range holdings {
		price := formatMoney(h.CurrentPrice)
		if h.PriceUnavailable {
			price = "n/a"
		}
		rows = append(rows, fmt.Sprintf("%-8s %10.2f %12s %12s %12s %12s",
			h.Ticker,
			h.Quantity,
			formatMoney(h.PurchasePrice),
			price,
			formatMoney(h.CurrentValue),
			FormatGainLoss(h.GainLoss),
		))
	}

	return strings.Join(rows, "\n")
}
