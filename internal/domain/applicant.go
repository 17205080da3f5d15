package domain

import "time"

// ApplicantStatus is the closed set of application lifecycle states.
// APPLIED is the initial state for every public submission.
type ApplicantStatus string

const (
	StatusApplied   ApplicantStatus = "APPLIED"
	StatusReviewed  ApplicantStatus = "REVIEWED"
	StatusInterview ApplicantStatus = "INTERVIEW"
	StatusHired     ApplicantStatus = "HIRED"
	StatusRejected  ApplicantStatus = "REJECTED"
)

// ValidApplicantStatus reports whether s is a member of the closed status set.
func ValidApplicantStatus(s ApplicantStatus) bool {
	switch s {
	case StatusApplied, StatusReviewed, StatusInterview, StatusHired, StatusRejected:
		return true
	}
	return false
}

// Applicant is a job application targeting exactly one position. Its tenant
// is inherited transitively through that position: an applicant has no
// company column of its own.
type Applicant struct {
	ID         string          `json:"id"`
	PositionID string          `json:"positionId"`
	FullName   string          `json:"fullName"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Education  string          `json:"education"`
	Experience int             `json:"experience"` // years
	ResumeURL  string          `json:"resumeUrl"`
	Status     ApplicantStatus `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`

	// PositionTitle is populated by list/detail queries that join the
	// owning position; empty elsewhere.
	PositionTitle string `json:"positionTitle,omitempty"`
}

// ApplicantRepository defines data access for applicants. Create is the one
// unscoped write (public submission). Every other operation resolves tenant
// ownership through the position join inside the same store operation, so a
// cross-tenant id is indistinguishable from a missing one and scoped
// mutations cannot race an ownership check.
type ApplicantRepository interface {
	Create(applicant *Applicant) error
	GetByID(id, companyID string) (*Applicant, error)
	// ListByCompany returns the company's applicants, optionally filtered to
	// one position. positionID == "" means all positions.
	ListByCompany(companyID, positionID string) ([]*Applicant, error)
	UpdateStatus(id, companyID string, status ApplicantStatus) error
	UpdateNotes(id, companyID, notes string) error
	Delete(id, companyID string) error
	// CompanyForPosition resolves the owning company of a position; used to
	// route public submissions to the right tenant feed.
	CompanyForPosition(positionID string) (string, error)
	// PurgeRejectedBefore deletes REJECTED applicants older than cutoff and
	// returns how many were removed. Used by the retention worker.
	PurgeRejectedBefore(cutoff time.Time) (int64, error)
}
