package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/api/middleware"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
	mongostore "github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/store/mongo"
)

// aiSuggestSentinel in the category field asks the server to categorize.
const aiSuggestSentinel = "AI_SUGGEST"

// Categorizer suggests a category for an expense description.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount float64) domain.CategorySuggestion
}

// TransactionsHandler handles transaction CRUD endpoints.
type TransactionsHandler struct {
	txs         TransactionStore
	categorizer Categorizer
	log         zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(txs TransactionStore, categorizer Categorizer, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{txs: txs, categorizer: categorizer, log: log}
}

// List handles GET /api/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	txs, err := h.txs.ListByOwner(r.Context(), userID, mongostore.ListOptions{})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, txs)
}

// Create handles POST /api/transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req struct {
		Text     string  `json:"text"`
		Amount   float64 `json:"amount"`
		Type     string  `json:"type"`
		Category string  `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" || req.Amount == 0 || req.Type == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Please provide text, amount and type")
		return
	}

	txType := domain.TransactionType(req.Type)
	if !domain.ValidType(txType) {
		middleware.WriteError(w, http.StatusBadRequest, "Type must be income or expense")
		return
	}

	now := time.Now()
	tx := &domain.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      req.Text,
		Amount:    domain.SignedAmount(txType, req.Amount),
		Type:      txType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch {
	case txType == domain.TypeIncome && (req.Category == "" || req.Category == aiSuggestSentinel):
		// Income is never AI-categorized.
		tx.Category = domain.CategoryIncome
	case req.Category == "" || req.Category == aiSuggestSentinel:
		suggestion := h.categorizer.Categorize(r.Context(), req.Text, req.Amount)
		tx.Category = suggestion.Category
		tx.AISuggested = true
		tx.AIConfidence = suggestion.Confidence
	default:
		cat, ok := domain.ParseCategory(req.Category)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		tx.Category = cat
	}

	if err := h.txs.Insert(r.Context(), tx); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// Update handles PUT /api/transactions/{id}
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	var req struct {
		Text     *string  `json:"text"`
		Amount   *float64 `json:"amount"`
		Type     *string  `json:"type"`
		Category *string  `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := domain.TransactionUpdate{Text: req.Text, Amount: req.Amount}

	if req.Type != nil {
		txType := domain.TransactionType(*req.Type)
		if !domain.ValidType(txType) {
			middleware.WriteError(w, http.StatusBadRequest, "Type must be income or expense")
			return
		}
		update.Type = &txType
	}
	if req.Category != nil {
		cat, ok := domain.ParseCategory(*req.Category)
		if !ok {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		update.Category = &cat
	}

	tx, ok := h.owned(w, r, id, userID)
	if !ok {
		return
	}

	tx.Apply(update, time.Now())

	if err := h.txs.Update(r.Context(), tx); err != nil {
		if errors.Is(err, mongostore.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to update transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, tx)
}

// Delete handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if _, ok := h.owned(w, r, id, userID); !ok {
		return
	}

	if err := h.txs.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, mongostore.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}

// owned loads the transaction and writes the error response itself when the
// record is missing or belongs to another user. An unknown id answers 404
// while a foreign id answers 401, matching the per-record ownership check.
func (h *TransactionsHandler) owned(w http.ResponseWriter, r *http.Request, id, userID string) (*domain.Transaction, bool) {
	tx, err := h.txs.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongostore.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return nil, false
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to load transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transaction")
		return nil, false
	}

	if tx.UserID != userID {
		middleware.WriteError(w, http.StatusUnauthorized, "Not authorized")
		return nil, false
	}
	return tx, true
}
