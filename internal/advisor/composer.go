// Package advisor composes natural-language budgeting advice from aggregated
// financial figures and an LLM client.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finloom/cashflow-copilot/internal/llm"
	"github.com/finloom/cashflow-copilot/internal/model"
)

// Fixed user-visible strings for the degraded paths.
const (
	// FallbackMessage is shown when text generation fails.
	FallbackMessage = "Unable to generate advice at this time. Please try again later."
	// NoDataMessage is shown when there are no transactions to analyze.
	NoDataMessage = "Please upload transaction data to receive personalized financial advice."
)

const advicePromptTemplate = `As a friendly financial advisor, analyze the following financial data and provide personalized budgeting advice:

Monthly Income: $%.2f
Total Monthly Expenses: $%.2f
Expense Categories:
%s
Current Risk Level: %s

Please provide:
1. A brief analysis of the spending patterns
2. 2-3 specific, actionable recommendations for improving financial health
3. A friendly, encouraging message about financial goals

Keep the tone conversational and supportive. Focus on practical, achievable steps.`

// Composer generates advice and spending insights.
type Composer struct {
	client llm.Client
	logger *slog.Logger
}

// New creates a Composer backed by the given LLM client.
func New(client llm.Client, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{client: client, logger: logger}
}

// GenerateAdvice builds the advice prompt and forwards it to the LLM. The
// returned error is the boundary failure; callers degrade to FallbackMessage.
// With no transactions it short-circuits to NoDataMessage.
func (c *Composer) GenerateAdvice(ctx context.Context, income float64, txns []model.Transaction, level model.RiskLevel) (string, error) {
	if len(txns) == 0 {
		return NoDataMessage, nil
	}

	prompt := c.buildAdvicePrompt(income, txns, level)

	reply, err := c.client.Complete(ctx, llm.UserMessage(prompt))
	if err != nil {
		c.logger.Warn("advice generation failed", "error", err)
		return "", err
	}
	return reply, nil
}

// buildAdvicePrompt interpolates the financial figures into the advice
// template. The category breakdown is ordered by the fixed category order so
// the prompt is deterministic.
func (c *Composer) buildAdvicePrompt(income float64, txns []model.Transaction, level model.RiskLevel) string {
	var totalExpenses float64
	categoryTotals := make(map[model.Category]float64)
	for _, txn := range txns {
		totalExpenses += txn.Amount
		categoryTotals[txn.Category] += txn.Amount
	}

	var breakdown strings.Builder
	for _, category := range model.Categories() {
		total, ok := categoryTotals[category]
		if !ok {
			continue
		}
		pct := 0.0
		if totalExpenses > 0 {
			pct = total / totalExpenses * 100
		}
		fmt.Fprintf(&breakdown, "%s: $%.2f (%.1f%%)\n", category, total, pct)
	}

	return fmt.Sprintf(advicePromptTemplate, income, totalExpenses, breakdown.String(), level)
}

// Insights returns quick spending observations: highest-spend category, most
// frequent category, and average transaction amount. Empty input yields nil.
func (c *Composer) Insights(txns []model.Transaction) []string {
	if len(txns) == 0 {
		return nil
	}

	var total float64
	sums := make(map[model.Category]float64)
	counts := make(map[model.Category]int)
	for _, txn := range txns {
		total += txn.Amount
		sums[txn.Category] += txn.Amount
		counts[txn.Category]++
	}

	var highest, frequent model.Category
	for _, category := range model.Categories() {
		if _, ok := sums[category]; !ok {
			continue
		}
		if highest == "" || sums[category] > sums[highest] {
			highest = category
		}
		if frequent == "" || counts[category] > counts[frequent] {
			frequent = category
		}
	}

	return []string{
		fmt.Sprintf("Highest spending category: %s ($%.2f)", highest, sums[highest]),
		fmt.Sprintf("Most frequent category: %s (%d transactions)", frequent, counts[frequent]),
		fmt.Sprintf("Average transaction amount: $%.2f", total/float64(len(txns))),
	}
}
