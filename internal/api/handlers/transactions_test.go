package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/api/middleware"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
	mongostore "github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/store/mongo"
)

func testUserCtx(ctx context.Context, userID string) context.Context {
	return middleware.WithUserID(ctx, userID)
}

type fakeTxStore struct {
	txs      map[string]*domain.Transaction
	lastOpts mongostore.ListOptions
}

func newFakeTxStore() *fakeTxStore {
	return &fakeTxStore{txs: make(map[string]*domain.Transaction)}
}

func (s *fakeTxStore) Insert(_ context.Context, t *domain.Transaction) error {
	cp := *t
	s.txs[t.ID] = &cp
	return nil
}

func (s *fakeTxStore) ListByOwner(_ context.Context, userID string, opts mongostore.ListOptions) ([]domain.Transaction, error) {
	s.lastOpts = opts
	out := make([]domain.Transaction, 0)
	for _, t := range s.txs {
		if t.UserID != userID {
			continue
		}
		if !opts.Since.IsZero() && t.CreatedAt.Before(opts.Since) {
			continue
		}
		if opts.Type != "" && t.Type != opts.Type {
			continue
		}
		out = append(out, *t)
	}
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *fakeTxStore) ByID(_ context.Context, id string) (*domain.Transaction, error) {
	if t, ok := s.txs[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, mongostore.ErrNotFound
}

func (s *fakeTxStore) Update(_ context.Context, t *domain.Transaction) error {
	stored, ok := s.txs[t.ID]
	if !ok || stored.UserID != t.UserID {
		return mongostore.ErrNotFound
	}
	cp := *t
	s.txs[t.ID] = &cp
	return nil
}

func (s *fakeTxStore) Delete(_ context.Context, id, userID string) error {
	if t, ok := s.txs[id]; ok && t.UserID == userID {
		delete(s.txs, id)
		return nil
	}
	return mongostore.ErrNotFound
}

type fakeCategorizer struct {
	suggestion domain.CategorySuggestion
	calls      int
}

func (c *fakeCategorizer) Categorize(_ context.Context, description string, amount float64) domain.CategorySuggestion {
	c.calls++
	return c.suggestion
}

func txRouter(h *TransactionsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/transactions", h.List)
	r.Post("/api/transactions", h.Create)
	r.Put("/api/transactions/{id}", h.Update)
	r.Delete("/api/transactions/{id}", h.Delete)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(testUserCtx(req.Context(), userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_AISuggest(t *testing.T) {
	store := newFakeTxStore()
	cat := &fakeCategorizer{suggestion: domain.CategorySuggestion{Category: domain.CategoryFood, Confidence: 0.9}}
	router := txRouter(NewTransactionsHandler(store, cat, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodPost, "/api/transactions", "u1", map[string]interface{}{
		"text": "Lunch at cafe", "amount": 250, "type": "expense",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if cat.calls != 1 {
		t.Fatalf("categorizer calls = %d, want 1", cat.calls)
	}

	var tx domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatal(err)
	}
	if tx.Category != domain.CategoryFood || !tx.AISuggested || tx.AIConfidence != 0.9 {
		t.Errorf("unexpected categorization: %+v", tx)
	}
	if tx.Amount != -250 {
		t.Errorf("amount = %v, want -250 for an expense", tx.Amount)
	}
	if tx.UserID != "u1" {
		t.Errorf("user = %q", tx.UserID)
	}
}

func TestCreate_ExplicitCategorySkipsAI(t *testing.T) {
	store := newFakeTxStore()
	cat := &fakeCategorizer{suggestion: domain.CategorySuggestion{Category: domain.CategoryFood, Confidence: 0.9}}
	router := txRouter(NewTransactionsHandler(store, cat, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodPost, "/api/transactions", "u1", map[string]interface{}{
		"text": "Bus pass", "amount": 500, "type": "expense", "category": "Transportation",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if cat.calls != 0 {
		t.Errorf("categorizer called for explicit category")
	}

	var tx domain.Transaction
	json.Unmarshal(rec.Body.Bytes(), &tx)
	if tx.Category != domain.CategoryTransportation || tx.AISuggested {
		t.Errorf("unexpected transaction: %+v", tx)
	}
}

func TestCreate_IncomeDefaultsToIncomeCategory(t *testing.T) {
	store := newFakeTxStore()
	cat := &fakeCategorizer{suggestion: domain.CategorySuggestion{Category: domain.CategoryFood, Confidence: 0.9}}
	router := txRouter(NewTransactionsHandler(store, cat, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodPost, "/api/transactions", "u1", map[string]interface{}{
		"text": "Salary", "amount": 50000, "type": "income",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if cat.calls != 0 {
		t.Errorf("categorizer called for income")
	}

	var tx domain.Transaction
	json.Unmarshal(rec.Body.Bytes(), &tx)
	if tx.Category != domain.CategoryIncome {
		t.Errorf("category = %v, want Income", tx.Category)
	}
	if tx.Amount != 50000 {
		t.Errorf("amount = %v, want positive for income", tx.Amount)
	}
}

func TestCreate_Validation(t *testing.T) {
	router := txRouter(NewTransactionsHandler(newFakeTxStore(), &fakeCategorizer{}, zerolog.Nop()))

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing text", map[string]interface{}{"amount": 100, "type": "expense"}},
		{"missing amount", map[string]interface{}{"text": "x", "type": "expense"}},
		{"bad type", map[string]interface{}{"text": "x", "amount": 100, "type": "transfer"}},
		{"bad category", map[string]interface{}{"text": "x", "amount": 100, "type": "expense", "category": "Groceries"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/transactions", "u1", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdate_CategoryOverride(t *testing.T) {
	store := newFakeTxStore()
	store.txs["t1"] = &domain.Transaction{
		ID: "t1", UserID: "u1", Text: "Lunch", Amount: -250,
		Category: domain.CategoryFood, Type: domain.TypeExpense,
		AISuggested: true, AIConfidence: 0.9,
	}
	router := txRouter(NewTransactionsHandler(store, &fakeCategorizer{}, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodPut, "/api/transactions/t1", "u1", map[string]interface{}{
		"category": "Shopping",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var tx domain.Transaction
	json.Unmarshal(rec.Body.Bytes(), &tx)
	if tx.Category != domain.CategoryShopping {
		t.Errorf("category = %v", tx.Category)
	}
	if tx.AISuggested {
		t.Error("AISuggested not cleared after manual override")
	}
	if tx.OriginalCategory == nil || *tx.OriginalCategory != domain.CategoryFood {
		t.Errorf("original category = %v, want Food", tx.OriginalCategory)
	}
}

func TestUpdate_OwnershipAndMissing(t *testing.T) {
	store := newFakeTxStore()
	store.txs["t1"] = &domain.Transaction{
		ID: "t1", UserID: "u1", Text: "Lunch", Amount: -250,
		Category: domain.CategoryFood, Type: domain.TypeExpense,
	}
	router := txRouter(NewTransactionsHandler(store, &fakeCategorizer{}, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodPut, "/api/transactions/t1", "intruder", map[string]interface{}{"text": "stolen"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("foreign update status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/transactions/nope", "u1", map[string]interface{}{"text": "x"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing update status = %d, want 404", rec.Code)
	}

	if store.txs["t1"].Text != "Lunch" {
		t.Error("foreign update mutated the record")
	}
}

func TestUpdate_TypeFlipRenormalizesSign(t *testing.T) {
	store := newFakeTxStore()
	store.txs["t1"] = &domain.Transaction{
		ID: "t1", UserID: "u1", Text: "Refund", Amount: -300,
		Category: domain.CategoryShopping, Type: domain.TypeExpense,
	}
	router := txRouter(NewTransactionsHandler(store, &fakeCategorizer{}, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodPut, "/api/transactions/t1", "u1", map[string]interface{}{"type": "income"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var tx domain.Transaction
	json.Unmarshal(rec.Body.Bytes(), &tx)
	if tx.Amount != 300 {
		t.Errorf("amount = %v, want +300 after flip to income", tx.Amount)
	}
}

func TestDelete(t *testing.T) {
	store := newFakeTxStore()
	store.txs["t1"] = &domain.Transaction{ID: "t1", UserID: "u1", Type: domain.TypeExpense}
	router := txRouter(NewTransactionsHandler(store, &fakeCategorizer{}, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodDelete, "/api/transactions/t1", "intruder", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("foreign delete status = %d, want 401", rec.Code)
	}
	if _, ok := store.txs["t1"]; !ok {
		t.Fatal("foreign delete removed the record")
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/transactions/t1", "u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := store.txs["t1"]; ok {
		t.Error("record not deleted")
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/transactions/t1", "u1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestList_OwnerScoped(t *testing.T) {
	store := newFakeTxStore()
	now := time.Now()
	store.txs["t1"] = &domain.Transaction{ID: "t1", UserID: "u1", Type: domain.TypeExpense, CreatedAt: now}
	store.txs["t2"] = &domain.Transaction{ID: "t2", UserID: "u2", Type: domain.TypeExpense, CreatedAt: now}
	router := txRouter(NewTransactionsHandler(store, &fakeCategorizer{}, zerolog.Nop()))

	rec := doJSON(t, router, http.MethodGet, "/api/transactions", "u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var txs []domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 || txs[0].ID != "t1" {
		t.Errorf("got %d transactions, want only u1's", len(txs))
	}
}
