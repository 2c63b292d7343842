package projections

import (
	"fmt"

	"classdesk/internal/domain/user"
)

// Dashboard is the projected view for one role. Exactly one of the role
// fields is set, matching the Role string.
type Dashboard struct {
	Role       string
	Instructor *InstructorDashboardResult
	Student    *StudentDashboardResult
	Admin      *AdminUserListResult
}

// RoleView is the per-role projection capability. Callers dispatch through it
// instead of branching on role strings at every call site.
type RoleView interface {
	Role() string
	Project(deps Deps) (Dashboard, error)
}

// StudentView projects the student dashboard.
type StudentView struct {
	StudentID string
}

// Role returns the role this view projects for.
func (v StudentView) Role() string { return user.RoleStudent }

// Project derives the student dashboard.
func (v StudentView) Project(deps Deps) (Dashboard, error) {
	res, err := QueryStudentDashboard(StudentDashboardQuery{StudentID: v.StudentID}, deps)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Role: user.RoleStudent, Student: &res}, nil
}

// InstructorView projects the instructor dashboard.
type InstructorView struct {
	InstructorID string
}

// Role returns the role this view projects for.
func (v InstructorView) Role() string { return user.RoleInstructor }

// Project derives the instructor dashboard.
func (v InstructorView) Project(deps Deps) (Dashboard, error) {
	res, err := QueryInstructorDashboard(InstructorDashboardQuery{InstructorID: v.InstructorID}, deps)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Role: user.RoleInstructor, Instructor: &res}, nil
}

// AdminView projects the admin user list.
type AdminView struct {
	RoleFilter string
	Search     string
}

// Role returns the role this view projects for.
func (v AdminView) Role() string { return user.RoleAdmin }

// Project derives the admin user list.
func (v AdminView) Project(deps Deps) (Dashboard, error) {
	res, err := QueryAdminUserList(AdminUserListQuery{RoleFilter: v.RoleFilter, Search: v.Search}, deps)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Role: user.RoleAdmin, Admin: &res}, nil
}

// ViewFor returns the RoleView matching a user's role.
// PRE: u has a known role
// POST: Returns the view variant for the role, or an error for unknown roles
func ViewFor(u user.User) (RoleView, error) {
	switch u.Role {
	case user.RoleStudent:
		return StudentView{StudentID: u.ID}, nil
	case user.RoleInstructor:
		return InstructorView{InstructorID: u.ID}, nil
	case user.RoleAdmin:
		return AdminView{RoleFilter: user.RoleFilterAll}, nil
	default:
		return nil, fmt.Errorf("no view for role %q", u.Role)
	}
}
