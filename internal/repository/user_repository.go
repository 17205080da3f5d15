package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/recruitdesk/internal/domain"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL.
// Every lookup except GetByEmail conjoins company_id with the primary key,
// so an id belonging to another tenant behaves exactly like a missing one.
type PostgresUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *sql.DB, logger *slog.Logger) *PostgresUserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserRepository{db: db, logger: logger}
}

// Create creates a new user
func (r *PostgresUserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (id, company_id, full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(
		query,
		user.ID,
		user.CompanyID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		r.logger.Error("failed to create user",
			slog.String("email", user.Email),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email. Email is globally unique, so this is
// deliberately unscoped: login runs before any tenant context exists.
func (r *PostgresUserRepository) GetByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	query := `
		SELECT id, company_id, full_name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.CompanyID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID within the caller's company
func (r *PostgresUserRepository) GetByID(id, companyID string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	user := &domain.User{}
	query := `
		SELECT id, company_id, full_name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1 AND company_id = $2
	`
	err := r.db.QueryRow(query, id, companyID).Scan(
		&user.ID,
		&user.CompanyID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to get user by id",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListByCompany lists all users for a company
func (r *PostgresUserRepository) ListByCompany(companyID string) ([]*domain.User, error) {
	query := `
		SELECT id, company_id, full_name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, companyID)
	if err != nil {
		r.logger.Error("failed to list users by company",
			slog.String("company_id", companyID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		err := rows.Scan(
			&user.ID,
			&user.CompanyID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Delete removes a user. The ownership filter rides in the same statement;
// zero rows affected means absent or foreign, and the two are not told apart.
func (r *PostgresUserRepository) Delete(id, companyID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `
		DELETE FROM users
		WHERE id = $1 AND company_id = $2
	`
	result, err := r.db.Exec(query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
