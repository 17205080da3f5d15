// Package validation performs field-level input checks for request payloads.
// Each function returns the accumulated failures; an empty slice means the
// payload is acceptable.
package validation

import (
	"net/mail"
	"net/url"

	"github.com/google/uuid"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/respond"
)

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Register validates the company+admin registration payload.
func Register(companyName, fullName, email, password, phone string) []respond.FieldError {
	var errs []respond.FieldError
	if companyName == "" {
		errs = append(errs, respond.FieldError{Msg: "Company name is required", Param: "companyName"})
	}
	if fullName == "" {
		errs = append(errs, respond.FieldError{Msg: "Full name is required", Param: "fullName"})
	}
	if !validEmail(email) {
		errs = append(errs, respond.FieldError{Msg: "Email is invalid", Param: "email"})
	}
	if len(password) < 6 {
		errs = append(errs, respond.FieldError{Msg: "Password min 6 characters", Param: "password"})
	}
	if phone == "" {
		errs = append(errs, respond.FieldError{Msg: "Phone number is required", Param: "phone"})
	}
	return errs
}

// Login validates login credentials.
func Login(email, password string) []respond.FieldError {
	var errs []respond.FieldError
	if email == "" {
		errs = append(errs, respond.FieldError{Msg: "Email is required", Param: "email"})
	}
	if len(password) < 6 {
		errs = append(errs, respond.FieldError{Msg: "Password must be at least 6 characters long", Param: "password"})
	}
	return errs
}

// User validates an admin-initiated user creation payload.
func User(fullName, email, password string, role domain.Role) []respond.FieldError {
	var errs []respond.FieldError
	if fullName == "" {
		errs = append(errs, respond.FieldError{Msg: "Full name is required", Param: "fullName"})
	}
	if !validEmail(email) {
		errs = append(errs, respond.FieldError{Msg: "Email is invalid", Param: "email"})
	}
	if len(password) < 6 {
		errs = append(errs, respond.FieldError{Msg: "Password min 6 characters", Param: "password"})
	}
	if !domain.ValidRole(role) {
		errs = append(errs, respond.FieldError{Msg: "Invalid role", Param: "role"})
	}
	return errs
}

// Position validates a position create/update payload.
func Position(title, location string, jobType domain.EmploymentType, description, salary string) []respond.FieldError {
	var errs []respond.FieldError
	if title == "" {
		errs = append(errs, respond.FieldError{Msg: "Title is required", Param: "title"})
	}
	if location == "" {
		errs = append(errs, respond.FieldError{Msg: "Location is required", Param: "location"})
	}
	if !domain.ValidEmploymentType(jobType) {
		errs = append(errs, respond.FieldError{Msg: "Invalid job type", Param: "type"})
	}
	if description == "" {
		errs = append(errs, respond.FieldError{Msg: "Description is required", Param: "description"})
	}
	if salary == "" {
		errs = append(errs, respond.FieldError{Msg: "Salary info is required", Param: "salary"})
	}
	return errs
}

// Applicant validates a public application payload. Experience arrives as a
// JSON number; negative values are as meaningless as non-numeric ones.
func Applicant(positionID, fullName, email, phone, education string, experience int, resumeURL string) []respond.FieldError {
	var errs []respond.FieldError
	if uuid.Validate(positionID) != nil {
		errs = append(errs, respond.FieldError{Msg: "Invalid position ID", Param: "positionId"})
	}
	if fullName == "" {
		errs = append(errs, respond.FieldError{Msg: "Full name is required", Param: "fullName"})
	}
	if !validEmail(email) {
		errs = append(errs, respond.FieldError{Msg: "Email is invalid", Param: "email"})
	}
	if phone == "" {
		errs = append(errs, respond.FieldError{Msg: "Phone is required", Param: "phone"})
	}
	if education == "" {
		errs = append(errs, respond.FieldError{Msg: "Education is required", Param: "education"})
	}
	if experience < 0 {
		errs = append(errs, respond.FieldError{Msg: "Experience must be a number", Param: "experience"})
	}
	if !validURL(resumeURL) {
		errs = append(errs, respond.FieldError{Msg: "Resume URL must be a valid link", Param: "resumeUrl"})
	}
	return errs
}

// Status validates an applicant status transition target.
func Status(status domain.ApplicantStatus) []respond.FieldError {
	if !domain.ValidApplicantStatus(status) {
		return []respond.FieldError{{Msg: "Invalid status", Param: "status"}}
	}
	return nil
}

// Notes validates an applicant notes update.
func Notes(notes string) []respond.FieldError {
	if notes == "" {
		return []respond.FieldError{{Msg: "Notes cannot be empty", Param: "notes"}}
	}
	return nil
}
