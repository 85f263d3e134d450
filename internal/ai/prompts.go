package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/analytics"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
)

func categorizePrompt(description string, amount float64) string {
	labels := make([]string, 0, len(domain.SuggestableCategories))
	for _, c := range domain.SuggestableCategories {
		labels = append(labels, string(c))
	}

	var b strings.Builder
	b.WriteString("Analyze this expense and categorize it:\n")
	fmt.Fprintf(&b, "Description: %q\n", description)
	fmt.Fprintf(&b, "Amount: ₹%.2f\n\n", amount)
	fmt.Fprintf(&b, "Choose the MOST appropriate category from: %s\n\n", strings.Join(labels, ", "))
	b.WriteString("Return ONLY the category name, nothing else.\n")
	return b.String()
}

func insightsPrompt(agg analytics.Aggregates, budgets map[domain.Category]float64) string {
	breakdown, _ := json.Marshal(agg.CategoryBreakdown)
	budgetJSON, _ := json.Marshal(budgets)

	var b strings.Builder
	b.WriteString("Analyze this user's spending pattern and provide 3 key insights:\n\n")
	fmt.Fprintf(&b, "Total Monthly Spend: ₹%.2f\n", agg.TotalSpent)
	fmt.Fprintf(&b, "Total Monthly Income: ₹%.2f\n", agg.TotalIncome)
	fmt.Fprintf(&b, "Category Breakdown: %s\n", breakdown)
	fmt.Fprintf(&b, "Budgets: %s\n\n", budgetJSON)
	b.WriteString("Provide insights as STRICT JSON in this exact shape (no markdown, no extra text):\n")
	b.WriteString(`{"insights":[{"type":"alert|success|prediction","message":"Brief insight message","category":"category_name"}]}`)
	b.WriteString("\n\nFocus on:\n")
	b.WriteString("- Budget overruns or good savings\n")
	b.WriteString("- Unusual spending patterns\n")
	b.WriteString("- Predictions based on trends\n")
	return b.String()
}

func chatPrompt(query string, agg analytics.Aggregates, recent []domain.Transaction, userCtx ChatContext) string {
	breakdown, _ := json.Marshal(agg.CategoryBreakdown)
	recentJSON, _ := json.Marshal(recent)
	ctxJSON, _ := json.Marshal(userCtx)

	var b strings.Builder
	b.WriteString("You are a personal financial advisor AI. Answer the user's query about their expenses.\n\n")
	fmt.Fprintf(&b, "User Query: %q\n\n", query)
	b.WriteString("User's Financial Data:\n")
	fmt.Fprintf(&b, "- Total Spent: ₹%.2f\n", agg.TotalSpent)
	fmt.Fprintf(&b, "- Category Spending: %s\n", breakdown)
	fmt.Fprintf(&b, "- Recent Transactions: %s\n", recentJSON)
	fmt.Fprintf(&b, "- User Context: %s\n\n", ctxJSON)
	b.WriteString("Provide a helpful, conversational response. Be specific with numbers and actionable advice.\n")
	b.WriteString("Keep the response under 100 words and friendly in tone.\n")
	return b.String()
}

func predictPrompt(trend map[string]float64) string {
	trendJSON, _ := json.Marshal(trend)

	var b strings.Builder
	b.WriteString("Based on this spending history, predict next month's spending:\n")
	fmt.Fprintf(&b, "%s\n\n", trendJSON)
	b.WriteString("Return only a number (predicted amount in rupees) without currency symbol.\n")
	return b.String()
}
