package domain

import "errors"

// Sentinel errors surfaced by repositories and services. Handlers map these
// to HTTP statuses; anything else collapses to a generic internal error.
var (
	// ErrNotFound covers both "does not exist" and "exists but belongs to
	// another tenant". The two cases must stay indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken signals a violation of the global email uniqueness
	// constraint on users.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials signals a password mismatch during login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
