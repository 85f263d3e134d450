package ai

import (
	"strings"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
)

// Fallback confidence levels.
const (
	fallbackMatchConfidence   = 0.7
	fallbackDefaultConfidence = 0.3
)

// keywordGroups are tested in order; the first group with a matching keyword
// wins. Keywords are matched as lowercase substrings of the description.
var keywordGroups = []struct {
	category domain.Category
	words    []string
}{
	{domain.CategoryFood, []string{"food", "restaurant", "zomato", "swiggy"}},
	{domain.CategoryTransportation, []string{"uber", "taxi", "bus", "transport"}},
	{domain.CategoryEntertainment, []string{"netflix", "movie", "entertainment"}},
	{domain.CategoryBills, []string{"bill", "electricity", "water"}},
	{domain.CategoryShopping, []string{"amazon", "shop", "store"}},
}

// FallbackCategorize is the deterministic keyword categorizer used when the
// AI backend is unavailable or fails. It assumes a non-empty description
// (validated at the boundary) and never fails.
func FallbackCategorize(description string) domain.CategorySuggestion {
	desc := strings.ToLower(description)

	for _, group := range keywordGroups {
		for _, word := range group.words {
			if strings.Contains(desc, word) {
				return domain.CategorySuggestion{Category: group.category, Confidence: fallbackMatchConfidence}
			}
		}
	}

	return domain.CategorySuggestion{Category: domain.CategoryOthers, Confidence: fallbackDefaultConfidence}
}
