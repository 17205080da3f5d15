package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/observability/metrics"
	"github.com/yourorg/recruitdesk/internal/security/auth"
	"github.com/yourorg/recruitdesk/pkg/cache"
)

const companyNameCacheTTL = 5 * time.Minute

// AuthService handles registration, login, and identity lookups.
type AuthService struct {
	userRepo    domain.UserRepository
	companyRepo domain.CompanyRepository
	tokens      *auth.TokenManager
	cache       *cache.Cache
	bcryptCost  int
	logger      *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo domain.UserRepository,
	companyRepo domain.CompanyRepository,
	tokens *auth.TokenManager,
	companyCache *cache.Cache,
	bcryptCost int,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	if companyCache == nil {
		companyCache = cache.New()
	}
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
		cache:       companyCache,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// RegisterResult is the registration response payload.
type RegisterResult struct {
	UserID    string      `json:"userId"`
	CompanyID string      `json:"companyId"`
	Role      domain.Role `json:"role"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// Register creates a new company and its first administrator as one atomic
// unit; either both persist or neither does. This is the only path that
// creates a user without a pre-existing authenticated principal.
func (s *AuthService) Register(companyName, email, password, fullName, phone string) (*RegisterResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	company := &domain.Company{
		ID:      uuid.NewString(),
		Name:    companyName,
		Email:   email,
		Phone:   phone,
		Address: "-",
	}
	admin := &domain.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}

	if err := s.companyRepo.CreateWithAdmin(company, admin); err != nil {
		metrics.ObserveRegistration("error")
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error("registration failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	metrics.ObserveRegistration("success")
	s.logger.Info("company registered",
		slog.String("company_id", company.ID),
		slog.String("user_id", admin.ID),
	)

	return &RegisterResult{
		UserID:    admin.ID,
		CompanyID: company.ID,
		Role:      admin.Role,
	}, nil
}

// Login authenticates a user by email and password and issues a token. The
// email lookup is global: login necessarily precedes any tenant context.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ObserveLogin("unknown_user")
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.ObserveLogin("bad_password")
		s.logger.Info("login failed with wrong password", slog.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Principal{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	})
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	metrics.ObserveLogin("success")
	s.logger.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("company_id", user.CompanyID),
	)

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Me returns the caller's own user record, enriched with the owning
// company's name.
func (s *AuthService) Me(principal domain.Principal) (*domain.PublicUser, error) {
	user, err := s.userRepo.GetByID(principal.UserID, principal.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("me lookup failed: %w", err)
	}

	public := user.Public()
	public.CompanyName = s.companyName(user.CompanyID)
	return &public, nil
}

// companyName resolves and caches a company's display name. A failed lookup
// degrades to an empty name rather than failing the identity request.
func (s *AuthService) companyName(companyID string) string {
	key := "company:" + companyID
	if name, ok := s.cache.GetString(key); ok {
		return name
	}
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		s.logger.Warn("failed to resolve company name",
			slog.String("company_id", companyID),
			slog.String("error", err.Error()),
		)
		return ""
	}
	s.cache.Set(key, company.Name, companyNameCacheTTL)
	return company.Name
}
