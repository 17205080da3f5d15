package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/recruitdesk/internal/domain"
)

// PostgresPositionRepository implements domain.PositionRepository using PostgreSQL
type PostgresPositionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPositionRepository creates a new position repository
func NewPostgresPositionRepository(db *sql.DB, logger *slog.Logger) *PostgresPositionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPositionRepository{db: db, logger: logger}
}

// Create creates a new position. CompanyID and CreatedBy are expected to come
// from the authenticated principal, never from the request payload.
func (r *PostgresPositionRepository) Create(position *domain.Position) error {
	query := `
		INSERT INTO positions (id, company_id, title, location, type, description, salary, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(
		query,
		position.ID,
		position.CompanyID,
		position.Title,
		position.Location,
		position.Type,
		position.Description,
		position.Salary,
		position.CreatedBy,
	).Scan(&position.CreatedAt, &position.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create position",
			slog.String("title", position.Title),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create position: %w", err)
	}
	return nil
}

// GetByID retrieves a position by ID within the caller's company
func (r *PostgresPositionRepository) GetByID(id, companyID string) (*domain.Position, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	p := &domain.Position{}
	query := `
		SELECT id, company_id, title, location, type, description, salary, created_by, created_at, updated_at
		FROM positions
		WHERE id = $1 AND company_id = $2
	`
	err := r.db.QueryRow(query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.Location, &p.Type,
		&p.Description, &p.Salary, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return p, nil
}

// ListByCompany lists all positions for a company
func (r *PostgresPositionRepository) ListByCompany(companyID string) ([]*domain.Position, error) {
	query := `
		SELECT id, company_id, title, location, type, description, salary, created_by, created_at, updated_at
		FROM positions
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Position
	for rows.Next() {
		p := &domain.Position{}
		err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Title, &p.Location, &p.Type,
			&p.Description, &p.Salary, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update mutates a position in a single scoped statement. There is no prior
// existence check to race against: the ownership filter and the mutation are
// one store operation.
func (r *PostgresPositionRepository) Update(position *domain.Position) error {
	if !validID(position.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE positions
		SET title = $1, location = $2, type = $3, description = $4, salary = $5, updated_at = now()
		WHERE id = $6 AND company_id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRow(
		query,
		position.Title,
		position.Location,
		position.Type,
		position.Description,
		position.Salary,
		position.ID,
		position.CompanyID,
	).Scan(&position.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update position: %w", err)
	}
	return nil
}

// Delete removes a position with the ownership filter applied in the same
// statement
func (r *PostgresPositionRepository) Delete(id, companyID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `
		DELETE FROM positions
		WHERE id = $1 AND company_id = $2
	`
	res, err := r.db.Exec(query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
