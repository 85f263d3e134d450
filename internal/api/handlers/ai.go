package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/ai"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/analytics"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/api/middleware"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
	mongostore "github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/store/mongo"
)

// Query windows for the AI endpoints.
const (
	insightsWindowDays   = 30
	chatWindowMonths     = 3
	chatTransactionLimit = 50
	predictWindowMonths  = 6
)

// defaultBudgets are the per-category budgets used when generating insights.
var defaultBudgets = map[domain.Category]float64{
	domain.CategoryFood:           15000,
	domain.CategoryTransportation: 8000,
	domain.CategoryEntertainment:  5000,
	domain.CategoryHealth:         5000,
	domain.CategoryShopping:       10000,
	domain.CategoryBills:          7000,
	domain.CategoryEducation:      3000,
}

// AIService is the slice of the AI service the handlers need.
type AIService interface {
	Categorize(ctx context.Context, description string, amount float64) domain.CategorySuggestion
	GenerateInsights(ctx context.Context, agg analytics.Aggregates, budgets map[domain.Category]float64) []domain.Insight
	Chat(ctx context.Context, query string, txs []domain.Transaction, userCtx ai.ChatContext) ai.ChatReply
	PredictNextPeriod(ctx context.Context, trend map[string]float64) float64
}

// Budgets are the thresholds the analytics endpoint classifies against.
type Budgets struct {
	Monthly       float64
	HighSpend     float64
	LargeCategory float64
}

// AIHandler handles the AI-backed endpoints.
type AIHandler struct {
	txs     TransactionStore
	svc     AIService
	budgets Budgets
	log     zerolog.Logger
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(txs TransactionStore, svc AIService, budgets Budgets, log zerolog.Logger) *AIHandler {
	return &AIHandler{txs: txs, svc: svc, budgets: budgets, log: log}
}

// Categorize handles POST /api/ai/categorize
func (h *AIHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Description is required")
		return
	}

	suggestion := h.svc.Categorize(r.Context(), req.Description, req.Amount)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"suggestedCategory": suggestion.Category,
		"confidence":        suggestion.Confidence,
		"message":           "AI suggests: " + string(suggestion.Category),
	})
}

// Insights handles GET /api/ai/insights
func (h *AIHandler) Insights(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	now := time.Now()

	txs, err := h.txs.ListByOwner(r.Context(), userID, mongostore.ListOptions{
		Since: now.AddDate(0, 0, -insightsWindowDays),
	})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load transactions for insights")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to generate insights")
		return
	}

	agg := analytics.Compute(txs)
	insights := h.svc.GenerateInsights(r.Context(), agg, defaultBudgets)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"insights":    insights,
		"generatedAt": now,
	})
}

// Chat handles POST /api/ai/chat
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req struct {
		Query string `json:"query"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Query is required")
		return
	}

	txs, err := h.txs.ListByOwner(r.Context(), userID, mongostore.ListOptions{
		Since: time.Now().AddDate(0, -chatWindowMonths, 0),
		Limit: chatTransactionLimit,
	})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load transactions for chat")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to answer question")
		return
	}

	reply := h.svc.Chat(r.Context(), req.Query, txs, ai.ChatContext{
		UserID:            userID,
		TotalTransactions: len(txs),
	})

	middleware.WriteJSON(w, http.StatusOK, reply)
}

// Predictions handles GET /api/ai/predictions
func (h *AIHandler) Predictions(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var category *domain.Category
	label := "overall"
	if raw := r.URL.Query().Get("category"); raw != "" {
		cat, ok := domain.ParseCategory(raw)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		category = &cat
		label = string(cat)
	}

	txs, err := h.txs.ListByOwner(r.Context(), userID, mongostore.ListOptions{
		Since: time.Now().AddDate(0, -predictWindowMonths, 0),
		Type:  domain.TypeExpense,
	})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load transactions for predictions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to generate prediction")
		return
	}

	trend := analytics.MonthlyTrend(txs, category)
	predicted := h.svc.PredictNextPeriod(r.Context(), trend)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"predictedAmount": round2(predicted),
		"category":        label,
		"period":          "next month",
	})
}

// Analytics handles GET /api/ai/analytics
func (h *AIHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	now := time.Now()

	txs, err := h.txs.ListByOwner(r.Context(), userID, mongostore.ListOptions{})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load transactions for analytics")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	month := analytics.FilterMonth(txs, now)
	agg := analytics.Compute(month)

	insights := analytics.DashboardInsights(agg, h.budgets.HighSpend, h.budgets.LargeCategory)
	remaining := analytics.PredictRemainingMonth(agg, now)
	used := analytics.BudgetUsedPercentage(agg.TotalSpent, h.budgets.Monthly)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": map[string]interface{}{
			"totalSpent":       round2(agg.TotalSpent),
			"totalIncome":      round2(agg.TotalIncome),
			"balance":          round2(agg.TotalIncome - agg.TotalSpent),
			"transactionCount": len(month),
			"budgetUsed":       round2(used),
			"monthlyBudget":    h.budgets.Monthly,
		},
		"categoryBreakdown": agg.CategoryBreakdown,
		"insights": map[string]interface{}{
			"items":       insights,
			"period":      "current_month",
			"generatedAt": now,
		},
		"predictions": map[string]interface{}{
			"remainingMonthSpending": remaining,
			"budgetStatus":           analytics.ClassifyBudget(used),
			"projectedMonthEnd":      round2(agg.TotalSpent + float64(remaining)),
		},
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
