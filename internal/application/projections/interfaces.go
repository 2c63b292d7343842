// Package projections derives role-specific read views from the normalized
// entity cache. Every function here is a pure derivation: it reads the cache
// through narrow interfaces and mutates nothing.
package projections

import (
	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/session"
	"classdesk/internal/domain/user"
)

// EntityReader interface for direct entity reads.
type EntityReader interface {
	AllCourses() []course.Course
	AllUsers() []user.User
	GetCourseByID(id string) (course.Course, bool)
	GetUserByID(id string) (user.User, bool)
}

// RelationReader interface for foreign-key lookups.
type RelationReader interface {
	SessionsByCourse(courseID string) []session.Session
	EnrollmentsByCourse(courseID string) []enrollment.Enrollment
	EnrollmentsByStudent(studentID string) []enrollment.Enrollment
}

// Deps holds the shared dependencies of all projections.
type Deps struct {
	Entities  EntityReader
	Relations RelationReader
}
