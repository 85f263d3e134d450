package analytics

import (
	"testing"
	"time"
)

func TestPredictRemainingMonth(t *testing.T) {
	// June has 30 days.
	midMonth := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	lastDay := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		agg  Aggregates
		now  time.Time
		want int
	}{
		{"no spend yet", Aggregates{}, midMonth, 0},
		{"month already over", Aggregates{TotalSpent: 3000}, lastDay, 0},
		// 1000 over 10 days = 100/day, 20 days remaining.
		{"mid-month extrapolation", Aggregates{TotalSpent: 1000}, midMonth, 2000},
		// 100/3 per day * 27 days = 900.
		{"rounding", Aggregates{TotalSpent: 100}, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictRemainingMonth(tt.agg, tt.now)
			if got != tt.want {
				t.Errorf("PredictRemainingMonth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrendAverage(t *testing.T) {
	tests := []struct {
		name  string
		trend map[string]float64
		want  float64
	}{
		{"no history", nil, 0},
		{"single month", map[string]float64{"2025-05": 1200}, 1200},
		{"mean of months", map[string]float64{"2025-04": 900, "2025-05": 1100}, 1000},
		{"rounded", map[string]float64{"2025-04": 100, "2025-05": 101}, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendAverage(tt.trend); got != tt.want {
				t.Errorf("TrendAverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		pct  float64
		want BudgetStatus
	}{
		{57, BudgetWithin},
		{85, BudgetApproaching},
		{130, BudgetOver},
		{80, BudgetWithin},
		{100, BudgetApproaching},
		{0, BudgetWithin},
	}

	for _, tt := range tests {
		if got := ClassifyBudget(tt.pct); got != tt.want {
			t.Errorf("ClassifyBudget(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestBudgetUsedPercentage(t *testing.T) {
	if got := BudgetUsedPercentage(28500, 50000); got != 57 {
		t.Errorf("BudgetUsedPercentage = %v, want 57", got)
	}
	if got := BudgetUsedPercentage(100, 0); got != 0 {
		t.Errorf("zero budget must yield 0, got %v", got)
	}
	if got := BudgetUsedPercentage(0, 50000); got != 0 {
		t.Errorf("zero spend must yield 0, got %v", got)
	}
}
