// Package handlers implements the HTTP API.
package handlers

import (
	"context"
	"net/http"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/api/middleware"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
	mongostore "github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/store/mongo"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
}

// TransactionStore is the slice of the transaction repository the handlers need.
type TransactionStore interface {
	Insert(ctx context.Context, t *domain.Transaction) error
	ListByOwner(ctx context.Context, userID string, opts mongostore.ListOptions) ([]domain.Transaction, error)
	ByID(ctx context.Context, id string) (*domain.Transaction, error)
	Update(ctx context.Context, t *domain.Transaction) error
	Delete(ctx context.Context, id, userID string) error
}

// HealthHandler reports liveness and which optional integrations are configured.
type HealthHandler struct {
	aiConfigured bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(aiConfigured bool) *HealthHandler {
	return &HealthHandler{aiConfigured: aiConfigured}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"ai":     h.aiConfigured,
	})
}
