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

// PositionRequest is the create/update payload for a job position.
type PositionRequest struct {
	Title       string                `json:"title"`
	Location    string                `json:"location"`
	Type        domain.EmploymentType `json:"type"`
	Description string                `json:"description"`
	Salary      string                `json:"salary"`
}

func (req PositionRequest) toInput() service.PositionInput {
	return service.PositionInput{
		Title:       req.Title,
		Location:    req.Location,
		Type:        req.Type,
		Description: req.Description,
		Salary:      req.Salary,
	}
}

// PositionHandler handles job position endpoints.
type PositionHandler struct {
	positions *service.PositionService
	logger    *slog.Logger
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(positions *service.PositionService, logger *slog.Logger) *PositionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PositionHandler{positions: positions, logger: logger}
}

// Create handles POST /api/positions
func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.Position(req.Title, req.Location, req.Type, req.Description, req.Salary); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	position, err := h.positions.Create(principal, req.toInput())
	if err != nil {
		h.logger.Error("position creation failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusCreated, position)
}

// List handles GET /api/positions
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	positions, err := h.positions.List(principal)
	if err != nil {
		h.logger.Error("position list failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, positions)
}

// Get handles GET /api/positions/{id}
func (h *PositionHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	position, err := h.positions.Get(principal, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Position not found")
			return
		}
		h.logger.Error("position lookup failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, position)
}

// Update handles PUT /api/positions/{id}
func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.Position(req.Title, req.Location, req.Type, req.Description, req.Salary); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	position, err := h.positions.Update(principal, r.PathValue("id"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Position not found")
			return
		}
		h.logger.Error("position update failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, position)
}

// Delete handles DELETE /api/positions/{id}
func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := h.positions.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Position not found")
			return
		}
		h.logger.Error("position deletion failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Message(w, http.StatusOK, "Position deleted successfully")
}
