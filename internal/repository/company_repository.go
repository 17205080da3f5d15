package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yourorg/recruitdesk/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// validID rejects keys that cannot exist in the UUID-typed primary key
// columns, so a malformed path id reads as absent instead of a cast error.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// PostgresCompanyRepository implements domain.CompanyRepository using PostgreSQL
type PostgresCompanyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCompanyRepository creates a new company repository
func NewPostgresCompanyRepository(db *sql.DB, logger *slog.Logger) *PostgresCompanyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCompanyRepository{db: db, logger: logger}
}

// CreateWithAdmin persists a company and its first administrator inside one
// transaction. The store's uniqueness constraint on users.email decides the
// loser under concurrent registrations; either way, nothing partial survives.
func (r *PostgresCompanyRepository) CreateWithAdmin(company *domain.Company, admin *domain.User) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin registration: %w", err)
	}
	defer tx.Rollback()

	companyQuery := `
		INSERT INTO companies (id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(companyQuery, company.ID, company.Name, company.Email, company.Phone, company.Address).
		Scan(&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create company",
			slog.String("name", company.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create company: %w", err)
	}

	userQuery := `
		INSERT INTO users (id, company_id, full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(userQuery, admin.ID, company.ID, admin.FullName, admin.Email, admin.PasswordHash, admin.Role).
		Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		r.logger.Error("failed to create admin user",
			slog.String("email", admin.Email),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	admin.CompanyID = company.ID
	return tx.Commit()
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(id string) (*domain.Company, error) {
	c := &domain.Company{}
	query := `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	err := r.db.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}
