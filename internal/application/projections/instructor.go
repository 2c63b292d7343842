package projections

import (
	"errors"

	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/session"
)

// InstructorDashboardQuery carries query parameters.
type InstructorDashboardQuery struct {
	InstructorID string
}

// InstructorDashboardResult carries the instructor's view: owned courses,
// their sessions, and enrollment requests awaiting review.
type InstructorDashboardResult struct {
	OwnCourses      []course.Course
	OwnSessions     []session.Session
	PendingRequests []enrollment.Enrollment
}

// QueryInstructorDashboard derives the instructor view.
// PRE: InstructorID is non-empty
// POST: OwnSessions and PendingRequests only reference courses in OwnCourses
// INVARIANT: PendingRequests contains pending enrollments only
func QueryInstructorDashboard(query InstructorDashboardQuery, deps Deps) (InstructorDashboardResult, error) {
	if query.InstructorID == "" {
		return InstructorDashboardResult{}, errors.New("instructor id is required")
	}

	result := InstructorDashboardResult{
		OwnCourses:      []course.Course{},
		OwnSessions:     []session.Session{},
		PendingRequests: []enrollment.Enrollment{},
	}

	for _, c := range deps.Entities.AllCourses() {
		if !c.OwnedBy(query.InstructorID) {
			continue
		}
		result.OwnCourses = append(result.OwnCourses, c)
		result.OwnSessions = append(result.OwnSessions, deps.Relations.SessionsByCourse(c.ID)...)
		for _, e := range deps.Relations.EnrollmentsByCourse(c.ID) {
			if e.IsPending() {
				result.PendingRequests = append(result.PendingRequests, e)
			}
		}
	}

	return result, nil
}
