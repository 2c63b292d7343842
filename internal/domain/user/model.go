package user

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Business rule constants
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"

	// RoleFilterAll is the admin list filter value matching every role.
	RoleFilterAll = "all"
)

// Domain errors
var (
	ErrUnknownRole = errors.New("role must be 'student', 'instructor', or 'admin'")
)

// User holds state for the concept.
type User struct {
	ID         string
	Name       string
	Email      string
	Role       string
	IsVerified bool
	CreatedAt  time.Time
}

// ValidRole reports whether role names one of the modeled roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor || role == RoleAdmin
}

// Validate checks if the User has valid data.
// PRE: User struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty, Role must be known
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("user name cannot be empty")
	}
	if len(u.Name) > MaxNameLength {
		return errors.New("user name cannot exceed 100 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("user email must be valid")
	}
	if !ValidRole(u.Role) {
		return ErrUnknownRole
	}
	return nil
}

// IsInstructor returns true if the user can own courses.
// INVARIANT: Role field is not mutated
func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// IsAdmin returns true if the user can manage the user list.
// INVARIANT: Role field is not mutated
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MatchesSearch reports whether the user matches a case-insensitive
// substring search over name and email. An empty term matches everyone.
func (u *User) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(u.Name), t) ||
		strings.Contains(strings.ToLower(u.Email), t)
}
