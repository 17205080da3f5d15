package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/recruitdesk/internal/domain"
)

// PostgresApplicantRepository implements domain.ApplicantRepository using
// PostgreSQL. Applicants carry no company column; ownership resolves through
// the position join, and scoped mutations carry that join in the WHERE clause
// so there is no check-then-act window.
type PostgresApplicantRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresApplicantRepository creates a new applicant repository
func NewPostgresApplicantRepository(db *sql.DB, logger *slog.Logger) *PostgresApplicantRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresApplicantRepository{db: db, logger: logger}
}

// Create persists a public application. This is the one unscoped write: the
// submitter has no tenant context, the position reference carries it.
func (r *PostgresApplicantRepository) Create(applicant *domain.Applicant) error {
	query := `
		INSERT INTO applicants (id, position_id, full_name, email, phone, education, experience, resume_url, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(
		query,
		applicant.ID,
		applicant.PositionID,
		applicant.FullName,
		applicant.Email,
		applicant.Phone,
		applicant.Education,
		applicant.Experience,
		applicant.ResumeURL,
		applicant.Status,
		applicant.Notes,
	).Scan(&applicant.CreatedAt, &applicant.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create applicant",
			slog.String("position_id", applicant.PositionID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create applicant: %w", err)
	}
	return nil
}

// GetByID retrieves an applicant by ID, scoped through the owning position
func (r *PostgresApplicantRepository) GetByID(id, companyID string) (*domain.Applicant, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	a := &domain.Applicant{}
	query := `
		SELECT a.id, a.position_id, a.full_name, a.email, a.phone, a.education,
		       a.experience, a.resume_url, a.status, a.notes, a.created_at, a.updated_at,
		       p.title
		FROM applicants a
		JOIN positions p ON p.id = a.position_id
		WHERE a.id = $1 AND p.company_id = $2
	`
	err := r.db.QueryRow(query, id, companyID).Scan(
		&a.ID, &a.PositionID, &a.FullName, &a.Email, &a.Phone, &a.Education,
		&a.Experience, &a.ResumeURL, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&a.PositionTitle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}
	return a, nil
}

// ListByCompany lists a company's applicants, optionally for one position
func (r *PostgresApplicantRepository) ListByCompany(companyID, positionID string) ([]*domain.Applicant, error) {
	query := `
		SELECT a.id, a.position_id, a.full_name, a.email, a.phone, a.education,
		       a.experience, a.resume_url, a.status, a.notes, a.created_at, a.updated_at,
		       p.title
		FROM applicants a
		JOIN positions p ON p.id = a.position_id
		WHERE p.company_id = $1
		ORDER BY a.created_at DESC
	`
	args := []any{companyID}
	if positionID != "" {
		if !validID(positionID) {
			return nil, nil
		}
		query = `
		SELECT a.id, a.position_id, a.full_name, a.email, a.phone, a.education,
		       a.experience, a.resume_url, a.status, a.notes, a.created_at, a.updated_at,
		       p.title
		FROM applicants a
		JOIN positions p ON p.id = a.position_id
		WHERE p.company_id = $1 AND a.position_id = $2
		ORDER BY a.created_at DESC
	`
		args = append(args, positionID)
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list applicants",
			slog.String("company_id", companyID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var out []*domain.Applicant
	for rows.Next() {
		a := &domain.Applicant{}
		err := rows.Scan(
			&a.ID, &a.PositionID, &a.FullName, &a.Email, &a.Phone, &a.Education,
			&a.Experience, &a.ResumeURL, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&a.PositionTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus sets the lifecycle status in a single scoped statement
func (r *PostgresApplicantRepository) UpdateStatus(id, companyID string, status domain.ApplicantStatus) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE applicants a
		SET status = $1, updated_at = now()
		FROM positions p
		WHERE a.id = $2 AND p.id = a.position_id AND p.company_id = $3
	`
	return r.scopedExec(query, status, id, companyID)
}

// UpdateNotes sets the free-text notes in a single scoped statement
func (r *PostgresApplicantRepository) UpdateNotes(id, companyID, notes string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE applicants a
		SET notes = $1, updated_at = now()
		FROM positions p
		WHERE a.id = $2 AND p.id = a.position_id AND p.company_id = $3
	`
	return r.scopedExec(query, notes, id, companyID)
}

// Delete removes an applicant with the ownership join in the same statement
func (r *PostgresApplicantRepository) Delete(id, companyID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	query := `
		DELETE FROM applicants a
		USING positions p
		WHERE a.id = $1 AND p.id = a.position_id AND p.company_id = $2
	`
	return r.scopedExec(query, id, companyID)
}

func (r *PostgresApplicantRepository) scopedExec(query string, args ...any) error {
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update applicant: %w", err)
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

// CompanyForPosition resolves the owning company of a position
func (r *PostgresApplicantRepository) CompanyForPosition(positionID string) (string, error) {
	if !validID(positionID) {
		return "", domain.ErrNotFound
	}
	var companyID string
	err := r.db.QueryRow(`SELECT company_id FROM positions WHERE id = $1`, positionID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve position company: %w", err)
	}
	return companyID, nil
}

// PurgeRejectedBefore deletes REJECTED applicants older than cutoff
func (r *PostgresApplicantRepository) PurgeRejectedBefore(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(
		`DELETE FROM applicants WHERE status = $1 AND updated_at < $2`,
		domain.StatusRejected, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge applicants: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows, nil
}
