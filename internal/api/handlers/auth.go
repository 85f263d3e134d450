package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/api/middleware"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/auth"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
	mongostore "github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/store/mongo"
)

const minPasswordLength = 6

// TokenIssuer signs a token for an authenticated user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthHandler handles registration, login and the current-user lookup.
type AuthHandler struct {
	users  UserStore
	tokens TokenIssuer
	log    zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users UserStore, tokens TokenIssuer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Please provide name, email and password")
		return
	}
	if !strings.Contains(req.Email, "@") {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		middleware.WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		CreatedAt: time.Now(),
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateEmail) {
			middleware.WriteError(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.log.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue token")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]string{
		"token":    token,
		"username": user.Name,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	// Lookup failure and password mismatch answer identically so the
	// endpoint cannot be used to probe for registered emails.
	user, err := h.users.ByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, mongostore.ErrNotFound) {
			h.log.Error().Err(err).Msg("Failed to look up user")
		}
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue token")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": user.Name,
	})
}

// Me handles GET /api/auth/user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, mongostore.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}
