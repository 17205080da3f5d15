package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/observability/metrics"
	"github.com/yourorg/recruitdesk/internal/security/audit"
)

// PositionInput carries the caller-editable fields of a position. Ownership
// fields (company, creator) always come from the principal.
type PositionInput struct {
	Title       string
	Location    string
	Type        domain.EmploymentType
	Description string
	Salary      string
}

// PositionService handles job position management within the caller's tenant.
type PositionService struct {
	positionRepo domain.PositionRepository
	audit        *audit.Logger
	logger       *slog.Logger
}

// NewPositionService creates a new position service
func NewPositionService(positionRepo domain.PositionRepository, auditLog *audit.Logger, logger *slog.Logger) *PositionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PositionService{positionRepo: positionRepo, audit: auditLog, logger: logger}
}

// Create opens a new position in the principal's company.
func (s *PositionService) Create(principal domain.Principal, in PositionInput) (*domain.Position, error) {
	position := &domain.Position{
		ID:          uuid.NewString(),
		CompanyID:   principal.CompanyID,
		Title:       in.Title,
		Location:    in.Location,
		Type:        in.Type,
		Description: in.Description,
		Salary:      in.Salary,
		CreatedBy:   principal.UserID,
	}
	if err := s.positionRepo.Create(position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	s.logger.Info("position created",
		slog.String("position_id", position.ID),
		slog.String("company_id", position.CompanyID),
	)
	return position, nil
}

// List returns all positions of the principal's company.
func (s *PositionService) List(principal domain.Principal) ([]*domain.Position, error) {
	positions, err := s.positionRepo.ListByCompany(principal.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

// Get returns one position of the principal's company.
func (s *PositionService) Get(principal domain.Principal, id string) (*domain.Position, error) {
	position, err := s.positionRepo.GetByID(id, principal.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("position")
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return position, nil
}

// Update rewrites a position's editable fields. The scoped update is a
// single store operation, so ownership cannot be raced between check and act.
func (s *PositionService) Update(principal domain.Principal, id string, in PositionInput) (*domain.Position, error) {
	position := &domain.Position{
		ID:          id,
		CompanyID:   principal.CompanyID,
		Title:       in.Title,
		Location:    in.Location,
		Type:        in.Type,
		Description: in.Description,
		Salary:      in.Salary,
	}
	if err := s.positionRepo.Update(position); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("position")
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update position: %w", err)
	}
	return s.Get(principal, id)
}

// Delete removes a position of the principal's company.
func (s *PositionService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if err := s.positionRepo.Delete(id, principal.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("position")
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if s.audit != nil {
		s.audit.LogPositionDeleted(ctx, principal.CompanyID, principal.UserID, id)
	}
	return nil
}
