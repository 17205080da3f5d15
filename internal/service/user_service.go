package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/observability/metrics"
	"github.com/yourorg/recruitdesk/internal/security/audit"
)

// UserService handles staff user management within the caller's tenant.
// Tenant scoping is structural: every repository call carries the
// principal's company id, never one supplied by the request.
type UserService struct {
	userRepo   domain.UserRepository
	audit      *audit.Logger
	bcryptCost int
	logger     *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository, auditLog *audit.Logger, bcryptCost int, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, audit: auditLog, bcryptCost: bcryptCost, logger: logger}
}

// Create adds a staff user to the principal's company.
func (s *UserService) Create(ctx context.Context, principal domain.Principal, fullName, email, password string, role domain.Role) (*domain.PublicUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		CompanyID:    principal.CompanyID,
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.audit != nil {
		s.audit.LogUserCreated(ctx, principal.CompanyID, principal.UserID, user.ID)
	}

	public := user.Public()
	return &public, nil
}

// List returns the principal's company staff.
func (s *UserService) List(principal domain.Principal) ([]domain.PublicUser, error) {
	users, err := s.userRepo.ListByCompany(principal.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// Get returns one staff user of the principal's company. A user belonging to
// another company is reported absent.
func (s *UserService) Get(principal domain.Principal, id string) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetByID(id, principal.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("user")
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	public := user.Public()
	return &public, nil
}

// Delete removes a staff user of the principal's company.
func (s *UserService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if err := s.userRepo.Delete(id, principal.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveScopedMiss("user")
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if s.audit != nil {
		s.audit.LogUserDeleted(ctx, principal.CompanyID, principal.UserID, id)
	}
	return nil
}
