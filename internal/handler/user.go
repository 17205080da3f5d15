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

// CreateUserRequest is the admin-initiated staff creation payload. No
// company field: tenant ownership always comes from the caller's token.
type CreateUserRequest struct {
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UserHandler handles staff user management endpoints.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{users: users, logger: logger}
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.User(req.FullName, req.Email, req.Password, req.Role); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	user, err := h.users.Create(r.Context(), principal, req.FullName, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respond.Message(w, http.StatusConflict, "Email already in use")
			return
		}
		h.logger.Error("user creation failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.DataMessage(w, http.StatusCreated, "User created successfully", user)
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	users, err := h.users.List(principal)
	if err != nil {
		h.logger.Error("user list failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	user, err := h.users.Get(principal, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("user lookup failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := h.users.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("user deletion failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Message(w, http.StatusOK, "User deleted successfully")
}
