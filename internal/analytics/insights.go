package analytics

import (
	"fmt"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
)

// generalCategory tags insights not tied to a single spending category.
const generalCategory = "general"

const encouragementMessage = "Keep tracking your expenses to maintain good financial habits!"

// RuleInsights is the deterministic insight generator. It is always
// available and never fails; an empty aggregate yields an empty slice.
func RuleInsights(agg Aggregates) []domain.Insight {
	var insights []domain.Insight

	if top, value, ok := TopCategory(agg.CategoryBreakdown); ok {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightPrediction,
			Message:  fmt.Sprintf("Your highest spending category this month is %s (₹%.2f)", top, value),
			Category: string(top),
		})
	}

	// Overspending and high-savings are mutually exclusive, checked in
	// this order.
	if agg.TotalSpent > agg.TotalIncome {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightAlert,
			Message:  "You're spending more than your income this month. Consider reviewing your expenses.",
			Category: generalCategory,
		})
	} else if agg.TotalIncome-agg.TotalSpent > agg.TotalIncome*0.2 {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightSuccess,
			Message:  "Great job! You're saving more than 20% of your income.",
			Category: generalCategory,
		})
	}

	if agg.WeekdaySplit.Weekend > agg.WeekdaySplit.Weekday*0.4 {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightAlert,
			Message:  "You tend to spend more on weekends. Consider setting a weekend budget.",
			Category: generalCategory,
		})
	}

	return insights
}

// DashboardInsights extends the rule-based insights with fixed-threshold
// checks for the analytics dashboard and always appends one encouragement
// message.
func DashboardInsights(agg Aggregates, highSpend, largeCategory float64) []domain.Insight {
	insights := RuleInsights(agg)

	if agg.TotalSpent > highSpend {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightAlert,
			Message:  fmt.Sprintf("You've spent ₹%.0f this month, which is quite high. Consider reviewing your expenses.", agg.TotalSpent),
			Category: generalCategory,
		})
	}

	if top, value, ok := TopCategory(agg.CategoryBreakdown); ok && value > largeCategory {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightPrediction,
			Message:  fmt.Sprintf("Your top spending category is %s with ₹%.0f.", top, value),
			Category: string(top),
		})
	}

	insights = append(insights, domain.Insight{
		Type:     domain.InsightSuccess,
		Message:  encouragementMessage,
		Category: generalCategory,
	})

	return insights
}
