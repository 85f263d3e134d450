// Package analytics computes aggregates, rule-based insights and predictions
// over a caller-owned transaction list. Every function here is pure: given a
// well-typed list it never fails, and an empty list yields zero aggregates.
package analytics

import (
	"time"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
)

// WeekdaySplit partitions expense magnitude by the day the transaction was
// created. Weekend means Sunday or Saturday (day indices 0 and 6 of a
// Sunday-start week), independent of locale.
type WeekdaySplit struct {
	Weekday float64 `json:"weekday"`
	Weekend float64 `json:"weekend"`
}

// Aggregates is the summary the insight generator and predictor consume.
type Aggregates struct {
	// CategoryBreakdown maps category to summed expense magnitude.
	// Income transactions are excluded.
	CategoryBreakdown map[domain.Category]float64 `json:"categoryBreakdown"`
	TotalSpent        float64                     `json:"totalSpent"`
	TotalIncome       float64                     `json:"totalIncome"`
	WeekdaySplit      WeekdaySplit                `json:"weekdaySplit"`
	// MonthlyTrend maps "YYYY-MM" (UTC) to summed magnitude across all
	// transaction types.
	MonthlyTrend map[string]float64 `json:"monthlyTrend"`
}

// Compute derives all aggregates from the transaction list. The caller is
// responsible for time-windowing and owner-scoping the list.
func Compute(txs []domain.Transaction) Aggregates {
	agg := Aggregates{
		CategoryBreakdown: make(map[domain.Category]float64),
		MonthlyTrend:      make(map[string]float64),
	}

	for _, t := range txs {
		amount := t.Magnitude()
		agg.MonthlyTrend[monthKey(t.CreatedAt)] += amount

		if t.Type == domain.TypeIncome {
			agg.TotalIncome += amount
			continue
		}

		agg.TotalSpent += amount

		cat := t.Category
		if cat == "" {
			cat = domain.CategoryOthers
		}
		agg.CategoryBreakdown[cat] += amount

		switch t.CreatedAt.Weekday() {
		case time.Sunday, time.Saturday:
			agg.WeekdaySplit.Weekend += amount
		default:
			agg.WeekdaySplit.Weekday += amount
		}
	}

	return agg
}

// MonthlyTrend buckets transaction magnitude by "YYYY-MM", optionally
// restricted to one category. Unlike the breakdown it does not filter by
// type; callers that want expense-only trends pass an expense-only list.
func MonthlyTrend(txs []domain.Transaction, category *domain.Category) map[string]float64 {
	trend := make(map[string]float64)
	for _, t := range txs {
		if category != nil && t.Category != *category {
			continue
		}
		trend[monthKey(t.CreatedAt)] += t.Magnitude()
	}
	return trend
}

// FilterMonth returns the transactions created in the month containing now.
func FilterMonth(txs []domain.Transaction, now time.Time) []domain.Transaction {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if !t.CreatedAt.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

// TopCategory returns the category with the maximum spend and its value.
// Ties resolve to the category reached first in the stable enumeration
// order. ok is false when the breakdown is empty.
func TopCategory(breakdown map[domain.Category]float64) (top domain.Category, value float64, ok bool) {
	for _, c := range domain.Categories {
		v, present := breakdown[c]
		if !present {
			continue
		}
		if !ok || v > value {
			top, value, ok = c, v, true
		}
	}
	return top, value, ok
}

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
