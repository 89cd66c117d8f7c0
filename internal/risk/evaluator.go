// Package risk derives a discrete risk tier and a recommended savings buffer
// from income and categorized expenses.
package risk

import (
	"fmt"
	"math"

	"github.com/finloom/cashflow-copilot/internal/model"
)

// Savings buffer multiples per tier, expressed in months of income.
const (
	bufferLow    = 0.3
	bufferMedium = 0.4
	bufferHigh   = 0.5
)

// Ratio thresholds for the risk factor rules.
const (
	expenseRatioHigh   = 0.9
	expenseRatioMedium = 0.7
	foodRatioMax       = 0.3
	entertainmentMax   = 0.2
	shoppingRatioMax   = 0.25
)

// Evaluate computes a risk assessment from monthly income and a transaction
// set. It is a pure function: identical inputs yield identical output.
//
// With no transactions there is nothing to evaluate, so the result is a
// neutral Medium tier. When income is zero the expense ratio is treated as
// infinite, which forces High.
func Evaluate(monthlyIncome float64, txns []model.Transaction) model.Assessment {
	if len(txns) == 0 {
		return model.Assessment{
			Level:         model.RiskMedium,
			Reasons:       []string{"No transaction data available"},
			SavingsBuffer: monthlyIncome * bufferLow,
		}
	}

	var totalExpenses float64
	categoryTotals := make(map[model.Category]float64)
	for _, txn := range txns {
		totalExpenses += txn.Amount
		categoryTotals[txn.Category] += txn.Amount
	}

	expenseRatio := math.Inf(1)
	categoryRatios := make(map[model.Category]float64, len(categoryTotals))
	if monthlyIncome > 0 {
		expenseRatio = totalExpenses / monthlyIncome
		for c, total := range categoryTotals {
			categoryRatios[c] = total / monthlyIncome
		}
	}

	// Each factor is evaluated independently; only the two overall expense
	// ratio checks are mutually exclusive.
	var factors []string
	switch {
	case expenseRatio > expenseRatioHigh:
		factors = append(factors, "Expenses exceed 90% of income")
	case expenseRatio > expenseRatioMedium:
		factors = append(factors, "Expenses exceed 70% of income")
	}
	if categoryRatios[model.CategoryFood] > foodRatioMax {
		factors = append(factors, "Food expenses exceed 30% of income")
	}
	if categoryRatios[model.CategoryEntertainment] > entertainmentMax {
		factors = append(factors, "Entertainment expenses exceed 20% of income")
	}
	if categoryRatios[model.CategoryShopping] > shoppingRatioMax {
		factors = append(factors, "Shopping expenses exceed 25% of income")
	}

	var level model.RiskLevel
	var buffer float64
	switch {
	case len(factors) >= 3 || expenseRatio > expenseRatioHigh:
		level = model.RiskHigh
		buffer = monthlyIncome * bufferHigh
	case len(factors) >= 1 || expenseRatio > expenseRatioMedium:
		level = model.RiskMedium
		buffer = monthlyIncome * bufferMedium
	default:
		level = model.RiskLow
		buffer = monthlyIncome * bufferLow
	}

	return model.Assessment{
		Level:          level,
		Reasons:        factors,
		SavingsBuffer:  buffer,
		ExpenseRatio:   expenseRatio,
		CategoryRatios: categoryRatios,
	}
}

// Recommendations returns the fixed four-item action list for an assessment,
// selected by tier with the savings buffer interpolated.
func Recommendations(a model.Assessment) []string {
	switch a.Level {
	case model.RiskHigh:
		return []string{
			"Immediately reduce non-essential expenses",
			fmt.Sprintf("Build emergency fund of $%.2f", a.SavingsBuffer),
			"Consider debt consolidation if applicable",
			"Create strict budget and track expenses daily",
		}
	case model.RiskMedium:
		return []string{
			"Review and reduce discretionary spending",
			fmt.Sprintf("Build emergency fund of $%.2f", a.SavingsBuffer),
			"Set up automatic savings transfers",
			"Monitor expenses weekly",
		}
	default:
		return []string{
			fmt.Sprintf("Maintain emergency fund of $%.2f", a.SavingsBuffer),
			"Continue current saving habits",
			"Consider investment opportunities",
			"Review budget monthly",
		}
	}
}
