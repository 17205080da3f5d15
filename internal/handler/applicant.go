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

// ApplyRequest is the public application payload.
type ApplyRequest struct {
	PositionID string `json:"positionId"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Experience int    `json:"experience"`
	ResumeURL  string `json:"resumeUrl"`
}

// StatusRequest is the applicant status transition payload.
type StatusRequest struct {
	Status domain.ApplicantStatus `json:"status"`
}

// NotesRequest is the applicant notes update payload.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// ApplicantHandler handles the public application endpoint and tenant-side
// applicant management.
type ApplicantHandler struct {
	applicants *service.ApplicantService
	logger     *slog.Logger
}

// NewApplicantHandler creates a new applicant handler
func NewApplicantHandler(applicants *service.ApplicantService, logger *slog.Logger) *ApplicantHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicantHandler{applicants: applicants, logger: logger}
}

// Apply handles POST /api/applicants. This is the one unauthenticated write.
func (h *ApplicantHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.Applicant(req.PositionID, req.FullName, req.Email, req.Phone, req.Education, req.Experience, req.ResumeURL); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	applicant, err := h.applicants.Apply(service.ApplyInput{
		PositionID: req.PositionID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Education:  req.Education,
		Experience: req.Experience,
		ResumeURL:  req.ResumeURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Position not found")
			return
		}
		h.logger.Error("application failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.DataMessage(w, http.StatusCreated, "Application submitted", applicant)
}

// List handles GET /api/applicants with an optional positionId filter.
func (h *ApplicantHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	applicants, err := h.applicants.List(principal, r.URL.Query().Get("positionId"))
	if err != nil {
		h.logger.Error("applicant list failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, applicants)
}

// Get handles GET /api/applicants/{id}
func (h *ApplicantHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	applicant, err := h.applicants.Get(principal, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Applicant not found")
			return
		}
		h.logger.Error("applicant lookup failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Data(w, http.StatusOK, applicant)
}

// UpdateStatus handles PATCH /api/applicants/{id}/status
func (h *ApplicantHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.Status(req.Status); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	if err := h.applicants.UpdateStatus(r.Context(), principal, r.PathValue("id"), req.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Applicant not found")
			return
		}
		h.logger.Error("status update failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Message(w, http.StatusOK, "Status updated")
}

// UpdateNotes handles PATCH /api/applicants/{id}/notes
func (h *ApplicantHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	var req NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validation.Notes(req.Notes); len(errs) > 0 {
		respond.Validation(w, errs)
		return
	}

	if err := h.applicants.UpdateNotes(principal, r.PathValue("id"), req.Notes); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Applicant not found")
			return
		}
		h.logger.Error("notes update failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Message(w, http.StatusOK, "Notes updated")
}

// Delete handles DELETE /api/applicants/{id}
func (h *ApplicantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := h.applicants.Delete(r.Context(), principal, r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Applicant not found")
			return
		}
		h.logger.Error("applicant deletion failed", slog.String("error", err.Error()))
		respond.Internal(w)
		return
	}

	respond.Message(w, http.StatusOK, "Applicant deleted")
}
