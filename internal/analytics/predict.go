package analytics

import (
	"math"
	"time"
)

// BudgetStatus classifies spend against the monthly budget.
type BudgetStatus string

const (
	BudgetOver        BudgetStatus = "over_budget"
	BudgetApproaching BudgetStatus = "approaching_limit"
	BudgetWithin      BudgetStatus = "within_budget"
)

// PredictRemainingMonth extrapolates the rest of the current month's spend
// from the average daily spend so far. agg must be computed over the current
// month's transactions. Returns 0 when the month is over or nothing has been
// spent yet; the result is rounded to the nearest currency unit.
func PredictRemainingMonth(agg Aggregates, now time.Time) int {
	if agg.TotalSpent == 0 {
		return 0
	}

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	daysPassed := now.Day()
	daysRemaining := daysInMonth - daysPassed
	if daysRemaining <= 0 {
		return 0
	}

	avgDaily := agg.TotalSpent / float64(daysPassed)
	return int(math.Round(avgDaily * float64(daysRemaining)))
}

// TrendAverage predicts next-period spending as the mean of the monthly
// trend values, rounded. Returns 0 when there is no history.
func TrendAverage(trend map[string]float64) float64 {
	if len(trend) == 0 {
		return 0
	}
	var sum float64
	for _, v := range trend {
		sum += v
	}
	return math.Round(sum / float64(len(trend)))
}

// BudgetUsedPercentage returns spend as a percentage of the monthly budget.
// A non-positive budget yields 0 rather than a division blowup.
func BudgetUsedPercentage(totalSpent, monthlyBudget float64) float64 {
	if totalSpent <= 0 || monthlyBudget <= 0 {
		return 0
	}
	return totalSpent / monthlyBudget * 100
}

// ClassifyBudget maps a budget-used percentage to its status.
func ClassifyBudget(usedPercentage float64) BudgetStatus {
	switch {
	case usedPercentage > 100:
		return BudgetOver
	case usedPercentage > 80:
		return BudgetApproaching
	default:
		return BudgetWithin
	}
}
