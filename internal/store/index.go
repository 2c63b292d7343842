package store

import (
	"sync"

	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/session"
)

// Index provides foreign-key lookups over the store. It is rebuilt lazily on
// first access after a store revision bump and cached until the next bump, so
// lookups within one derivation pass are never partially stale.
type Index struct {
	store *Store

	mu                   sync.Mutex
	builtRev             uint64
	built                bool
	sessionsByCourse     map[string][]session.Session
	enrollmentsByCourse  map[string][]enrollment.Enrollment
	enrollmentsByStudent map[string][]enrollment.Enrollment
}

// NewIndex creates an Index over the given store.
func NewIndex(s *Store) *Index {
	return &Index{store: s}
}

// SessionsByCourse returns the sessions of a course ordered by date.
// POST: Result reflects the store revision current at call time
func (ix *Index) SessionsByCourse(courseID string) []session.Session {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.ensure()
	return ix.sessionsByCourse[courseID]
}

// EnrollmentsByCourse returns the enrollments referencing a course.
func (ix *Index) EnrollmentsByCourse(courseID string) []enrollment.Enrollment {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.ensure()
	return ix.enrollmentsByCourse[courseID]
}

// EnrollmentsByStudent returns the enrollments created by a student.
func (ix *Index) EnrollmentsByStudent(studentID string) []enrollment.Enrollment {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.ensure()
	return ix.enrollmentsByStudent[studentID]
}

// ensure rebuilds the lookup maps when the store has moved on.
// INVARIANT: One linear pass per collection; lookups are O(1) afterwards
func (ix *Index) ensure() {
	rev := ix.store.Revision()
	if ix.built && rev == ix.builtRev {
		return
	}

	sessions := ix.store.AllSessions()
	enrollments := ix.store.AllEnrollments()

	ix.sessionsByCourse = make(map[string][]session.Session)
	for _, se := range sessions {
		ix.sessionsByCourse[se.CourseID] = append(ix.sessionsByCourse[se.CourseID], se)
	}

	ix.enrollmentsByCourse = make(map[string][]enrollment.Enrollment)
	ix.enrollmentsByStudent = make(map[string][]enrollment.Enrollment)
	for _, e := range enrollments {
		ix.enrollmentsByCourse[e.CourseID] = append(ix.enrollmentsByCourse[e.CourseID], e)
		ix.enrollmentsByStudent[e.StudentID] = append(ix.enrollmentsByStudent[e.StudentID], e)
	}

	ix.builtRev = rev
	ix.built = true
}
