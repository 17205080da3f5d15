package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/events"
	"github.com/yourorg/recruitdesk/internal/observability/metrics"
	"github.com/yourorg/recruitdesk/internal/security/audit"
)

// ApplyInput carries a public application payload.
type ApplyInput struct {
	PositionID string
	FullName   string
	Email      string
	Phone      string
	Education  string
	Experience int
	ResumeURL  string
}

// ApplicantService handles the applicant lifecycle. Apply is public; every
// other operation is scoped to the tenant that owns the applicant's position.
type ApplicantService struct {
	applicantRepo domain.ApplicantRepository
	hub           *events.Hub
	audit         *audit.Logger
	logger        *slog.Logger
}

// NewApplicantService creates a new applicant service
func NewApplicantService(applicantRepo domain.ApplicantRepository, hub *events.Hub, auditLog *audit.Logger, logger *slog.Logger) *ApplicantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicantService{applicantRepo: applicantRepo, hub: hub, audit: auditLog, logger: logger}
}

// Apply accepts a public application. The submitter has no tenant context;
// ownership is inherited through the referenced position, which must exist.
func (s *ApplicantService) Apply(in ApplyInput) (*domain.Applicant, error) {
	companyID, err := s.applicantRepo.CompanyForPosition(in.PositionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve position: %w", err)
	}

	applicant := &domain.Applicant{
		ID:         uuid.NewString(),
		PositionID: in.PositionID,
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		Education:  in.Education,
		Experience: in.Experience,
		ResumeURL:  in.ResumeURL,
		Status:     domain.StatusApplied,
	}
	if err := s.applicantRepo.Create(applicant); err != nil {
		return nil, fmt.Errorf("failed to create applicant: %w", err)
	}

	metrics.ObserveApplication()
	s.logger.Info("application received",
		slog.String("applicant_id", applicant.ID),
		slog.String("position_id", applicant.PositionID),
	)

	s.publish(companyID, applicant)
	return applicant, nil
}

// publish notifies the owning tenant's feed subscribers. Best effort: a feed
// miss never fails the submission.
func (s *ApplicantService) publish(companyID string, applicant *domain.Applicant) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.ApplicantEvent{
		CompanyID:   companyID,
		ApplicantID: applicant.ID,
		PositionID:  applicant.PositionID,
		FullName:    applicant.FullName,
		Status:      applicant.Status,
		SubmittedAt: applicant.CreatedAt,
	})
}

// List returns the company's applicants, optionally for one position.
func (s *ApplicantService) List(principal domain.Principal, positionID string) ([]*domain.Applicant, error) {
	applicants, err := s.applicantRepo.ListByCompany(principal.CompanyID, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return applicants, nil
}

// Get returns one applicant of the principal's company.
func (s *ApplicantService) Get(principal domain.Principal, id string) (*domain.Applicant, error) {
	applicant, err := s.applicantRepo.GetByID(id, principal.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("applicant")
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}
	return applicant, nil
}

// UpdateStatus transitions an applicant's lifecycle state.
func (s *ApplicantService) UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.ApplicantStatus) error {
	if err := s.applicantRepo.UpdateStatus(id, principal.CompanyID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("applicant")
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update status: %w", err)
	}
	if s.audit != nil {
		s.audit.LogStatusChange(ctx, principal.CompanyID, principal.UserID, id, string(status))
	}
	return nil
}

// UpdateNotes rewrites an applicant's free-text notes.
func (s *ApplicantService) UpdateNotes(principal domain.Principal, id, notes string) error {
	if err := s.applicantRepo.UpdateNotes(id, principal.CompanyID, notes); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("applicant")
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update notes: %w", err)
	}
	return nil
}

// Delete removes an applicant of the principal's company.
func (s *ApplicantService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if err := s.applicantRepo.Delete(id, principal.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("applicant")
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	if s.audit != nil {
		s.audit.LogAction(ctx, principal.CompanyID, principal.UserID, "delete", "applicant", id, "success")
	}
	return nil
}

// PurgeRejectedOlderThan removes REJECTED applicants whose last update is
// older than the retention window. Called by the retention worker.
func (s *ApplicantService) PurgeRejectedOlderThan(age time.Duration) (int64, error) {
	purged, err := s.applicantRepo.PurgeRejectedBefore(time.Now().Add(-age))
	if err != nil {
		return 0, fmt.Errorf("failed to purge applicants: %w", err)
	}
	metrics.ObserveRetentionPurge(purged)
	return purged, nil
}
