package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/respond"
	"github.com/yourorg/recruitdesk/internal/security/middleware"
	"github.com/yourorg/recruitdesk/internal/service"
	"github.com/yourorg/recruitdesk/internal/validation"
)

// RegisterRequest is the company+admin registration payload.
type RegisterRequest struct {
	CompanyName string `json:"companyName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler handles registration, login, and identity endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{auth: auth, logger: logger}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.Register(req.CompanyName, req.FullName, req.Email, req.Password, req.Phone); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	result, err := h.auth.Register(req.CompanyName, req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respond.Message(w, http.StatusConflict, "Email already in use")
			return
		}
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.DataMessage(w, http.StatusCreated, "Company and Admin registered successfully", result)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.Login(req.Email, req.Password); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	result, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respond.Message(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidCredentials):
			respond.Message(w, http.StatusUnauthorized, "Invalid password")
		default:
			h.logger.Error("login failed", slog.String("error", err.Error()))
			respond.Internal(w)
		}
		return
	}

	respond.DataMessage(w, http.StatusOK, "Login successfully", result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	user, err := h.auth.Me(principal)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("identity lookup failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout. Tokens are stateless with a fixed
// expiry; the client discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusOK, "Logout successfully")
}
