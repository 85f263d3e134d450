package domain

// Category is the closed set of transaction categories. The same enumeration
// is used by the storage schema, the categorizer and request validation so the
// three can never drift apart.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealth         Category = "Health"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategoryEducation      Category = "Education"
	CategoryIncome         Category = "Income"
	CategoryOthers         Category = "Others"
)

// Categories lists every valid category in a stable order. Code that reduces
// over the breakdown map iterates this slice so ties resolve deterministically.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryHealth,
	CategoryShopping,
	CategoryBills,
	CategoryEducation,
	CategoryIncome,
	CategoryOthers,
}

// SuggestableCategories is the subset the categorizer may propose for an
// expense. Income is assigned by transaction type, never suggested.
var SuggestableCategories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryHealth,
	CategoryShopping,
	CategoryBills,
	CategoryEducation,
	CategoryOthers,
}

// ParseCategory returns the matching category for an exact label.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// IsSuggestable reports whether the categorizer is allowed to return c.
func IsSuggestable(c Category) bool {
	for _, s := range SuggestableCategories {
		if s == c {
			return true
		}
	}
	return false
}
