package domain

import (
	"net/mail"
	"regexp"
	"strings"

	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
)

// Column widths of the users table
const (
	MaxNameLength  = 255
	MaxEmailLength = 255
)

var emailRegex = regexp.MustCompile(`^[\p{L}\p{N}._%+\-]+@[\p{L}\p{N}.\-]+\.\p{L}{2,}$`)

// User is a persisted user record. ID is assigned by the store on insert
// and never changes afterwards.
type User struct {
	ID    int64
	Name  string
	Email string
}

// UserCreate holds the fields accepted when creating a user.
type UserCreate struct {
	Name  string
	Email string
}

// Validate validates user creation parameters
func (p *UserCreate) Validate() error {
	errs := apperrors.NewValidationErrors()

	// Validate name
	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "Name is required")
	} else if len(p.Name) > MaxNameLength {
		errs.Add("name", "Name must be 255 characters or less")
	}

	// Validate email
	if p.Email == "" {
		errs.Add("email", "Email is required")
	} else if len(p.Email) > MaxEmailLength {
		errs.Add("email", "Email must be 255 characters or less")
	} else if !IsValidEmail(p.Email) {
		errs.Add("email", "Invalid email format")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// IsValidEmail reports whether email is a bare address such as
// "ana@example.com" or "josé@exämple.com". Display-name forms
// ("Ana <ana@example.com>") are rejected.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	return emailRegex.MatchString(email)
}
