package model

import "strings"

// RiskLevel is a discrete tier summarizing expense-to-income health.
type RiskLevel string

// Risk tiers.
const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Assessment is the result of one risk evaluation. It is computed fresh per
// evaluation and never mutated; persisted copies are historical snapshots.
type Assessment struct {
	CategoryRatios map[Category]float64
	Reasons        []string
	Level          RiskLevel
	SavingsBuffer  float64
	ExpenseRatio   float64
}

// Reason joins the triggered risk factors into a single display string.
func (a Assessment) Reason() string {
	if len(a.Reasons) == 0 {
		return "Good financial health"
	}
	return strings.Join(a.Reasons, "; ")
}
