package domain

import "time"

// Role is the closed set of user roles. There is exactly one canonical
// enumeration; anything else is rejected at the validation boundary.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleHR        Role = "HR"
)

// ValidRole reports whether r is a member of the closed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleHR:
		return true
	}
	return false
}

// Company is the tenant root. Every other entity belongs to exactly one
// company, directly or through a parent reference.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User is a human actor within exactly one company. CompanyID is fixed at
// creation and never reassigned.
type User struct {
	ID           string
	CompanyID    string
	FullName     string
	Email        string // globally unique across tenants
	PasswordHash string // never serialized
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward projection of a User with the password hash
// stripped. All user-returning boundaries go through Public().
type PublicUser struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// CompanyName is populated only where the endpoint joins the owning
	// company (e.g. /auth/me); omitted elsewhere.
	CompanyName string `json:"companyName,omitempty"`
}

// Public strips sensitive fields for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Principal is the authenticated identity for one request, derived from a
// verified token. It is never persisted.
type Principal struct {
	UserID    string
	CompanyID string
	Role      Role
}

// UserRepository defines data access for users. Reads and deletes other than
// GetByEmail are tenant-scoped: the companyID argument is conjoined with the
// primary key so a cross-tenant id behaves exactly like a missing one.
type UserRepository interface {
	Create(user *User) error
	// GetByEmail is the only unscoped lookup; login runs before any tenant
	// context exists.
	GetByEmail(email string) (*User, error)
	GetByID(id, companyID string) (*User, error)
	ListByCompany(companyID string) ([]*User, error)
	Delete(id, companyID string) error
}

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	// CreateWithAdmin persists a company and its first administrator as one
	// atomic unit. On any failure neither record exists afterwards.
	CreateWithAdmin(company *Company, admin *User) error
	GetByID(id string) (*Company, error)
}
