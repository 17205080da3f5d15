package domain

import "time"

// EmploymentType is the closed set of job types.
type EmploymentType string

const (
	TypeFullTime EmploymentType = "FULL_TIME"
	TypePartTime EmploymentType = "PART_TIME"
	TypeContract EmploymentType = "CONTRACT"
	TypeIntern   EmploymentType = "INTERN"
)

// ValidEmploymentType reports whether t is a member of the closed type set.
func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeIntern:
		return true
	}
	return false
}

// Position is a job opening owned by exactly one company.
type Position struct {
	ID          string         `json:"id"`
	CompanyID   string         `json:"companyId"`
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	Type        EmploymentType `json:"type"`
	Description string         `json:"description"`
	Salary      string         `json:"salary"`
	CreatedBy   string         `json:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// PositionRepository defines tenant-scoped data access for positions.
// Update and Delete carry the ownership filter in the same store operation;
// zero rows affected surfaces ErrNotFound.
type PositionRepository interface {
	Create(position *Position) error
	GetByID(id, companyID string) (*Position, error)
	ListByCompany(companyID string) ([]*Position, error)
	Update(position *Position) error
	Delete(id, companyID string) error
}
