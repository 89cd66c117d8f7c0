// Package model defines the core domain models used throughout the application.
package model

// Category is a spending category label assigned to a transaction.
type Category string

// The fixed set of spending categories.
const (
	CategoryFood           Category = "Food"
	CategoryTravel         Category = "Travel"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryTransportation Category = "Transportation"
	// CategoryOther is the catch-all assigned when nothing else matches.
	CategoryOther Category = "Other"
)

// Categories lists every valid category, in classification order with the
// catch-all last.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTravel,
		CategoryShopping,
		CategoryBills,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryEducation,
		CategoryTransportation,
		CategoryOther,
	}
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// String returns the category label.
func (c Category) String() string {
	return string(c)
}
