// Package store holds the normalized client-side cache of backend entities.
// Each collection is fetched flat from the backend and owned here; consumers
// read derived views and never share mutable references. Every mutation bumps
// a revision counter that the relational index keys its rebuilds on.
package store

import (
	"sort"
	"sync"

	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/session"
	"classdesk/internal/domain/user"
)

// Store is the in-memory entity cache. A single mutex covers all collections
// so a cascade delete is atomic: no reader observes a course gone while its
// sessions or enrollments linger.
type Store struct {
	mu          sync.Mutex
	rev         uint64
	users       map[string]user.User
	courses     map[string]course.Course
	sessions    map[string]session.Session
	enrollments map[string]enrollment.Enrollment
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:       make(map[string]user.User),
		courses:     make(map[string]course.Course),
		sessions:    make(map[string]session.Session),
		enrollments: make(map[string]enrollment.Enrollment),
	}
}

// Revision returns the current mutation counter.
// INVARIANT: Strictly increases with every mutation
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// --- users ---

// UpsertUser inserts or replaces a user.
func (s *Store) UpsertUser(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.rev++
}

// RemoveUser deletes a user by id. Removing an absent id is a no-op.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; ok {
		delete(s.users, id)
		s.rev++
	}
}

// ReplaceAllUsers replaces the whole collection after a top-level fetch.
// POST: Previous contents are discarded, no incremental merge
func (s *Store) ReplaceAllUsers(list []user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]user.User, len(list))
	for _, u := range list {
		s.users[u.ID] = u
	}
	s.rev++
}

// GetUserByID returns a copy of the user, if present.
func (s *Store) GetUserByID(id string) (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// AllUsers returns all users ordered by name then id.
func (s *Store) AllUsers() []user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// --- courses ---

// UpsertCourse inserts or replaces a course.
func (s *Store) UpsertCourse(c course.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = c
	s.rev++
}

// ReplaceAllCourses replaces the whole collection after a top-level fetch.
func (s *Store) ReplaceAllCourses(list []course.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = make(map[string]course.Course, len(list))
	for _, c := range list {
		s.courses[c.ID] = c
	}
	s.rev++
}

// GetCourseByID returns a copy of the course, if present.
func (s *Store) GetCourseByID(id string) (course.Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	return c, ok
}

// AllCourses returns all courses ordered by title then id.
func (s *Store) AllCourses() []course.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]course.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RemoveCourseCascade deletes a course and purges its dependent sessions and
// enrollments in the same step.
// PRE: id is non-empty
// POST: No session or enrollment referencing the course remains
// INVARIANT: Atomic; no reader observes orphaned dependents
func (s *Store) RemoveCourseCascade(id string) (sessionsRemoved, enrollmentsRemoved int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, id)
	for sid, se := range s.sessions {
		if se.CourseID == id {
			delete(s.sessions, sid)
			sessionsRemoved++
		}
	}
	for eid, e := range s.enrollments {
		if e.CourseID == id {
			delete(s.enrollments, eid)
			enrollmentsRemoved++
		}
	}
	s.rev++
	return sessionsRemoved, enrollmentsRemoved
}

// --- sessions ---

// UpsertSession inserts or replaces a session.
func (s *Store) UpsertSession(se session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[se.ID] = se
	s.rev++
}

// RemoveSession deletes a session by id. Removing an absent id is a no-op.
func (s *Store) RemoveSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		s.rev++
	}
}

// ReplaceAllSessions replaces the whole collection after a top-level fetch.
func (s *Store) ReplaceAllSessions(list []session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]session.Session, len(list))
	for _, se := range list {
		s.sessions[se.ID] = se
	}
	s.rev++
}

// GetSessionByID returns a copy of the session, if present.
func (s *Store) GetSessionByID(id string) (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, ok := s.sessions[id]
	return se, ok
}

// AllSessions returns all sessions ordered by date then id.
func (s *Store) AllSessions() []session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]session.Session, 0, len(s.sessions))
	for _, se := range s.sessions {
		out = append(out, se)
	}
	sortSessions(out)
	return out
}

func sortSessions(list []session.Session) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ID < list[j].ID
	})
}

// --- enrollments ---

// UpsertEnrollment inserts or replaces an enrollment.
func (s *Store) UpsertEnrollment(e enrollment.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments[e.ID] = e
	s.rev++
}

// RemoveEnrollment deletes an enrollment by id. Removing an absent id is a no-op.
func (s *Store) RemoveEnrollment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enrollments[id]; ok {
		delete(s.enrollments, id)
		s.rev++
	}
}

// ReplaceAllEnrollments replaces the whole collection after a top-level fetch.
func (s *Store) ReplaceAllEnrollments(list []enrollment.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments = make(map[string]enrollment.Enrollment, len(list))
	for _, e := range list {
		s.enrollments[e.ID] = e
	}
	s.rev++
}

// GetEnrollmentByID returns a copy of the enrollment, if present.
func (s *Store) GetEnrollmentByID(id string) (enrollment.Enrollment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.enrollments[id]
	return e, ok
}

// AllEnrollments returns all enrollments ordered by creation time then id.
func (s *Store) AllEnrollments() []enrollment.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]enrollment.Enrollment, 0, len(s.enrollments))
	for _, e := range s.enrollments {
		out = append(out, e)
	}
	sortEnrollments(out)
	return out
}

func sortEnrollments(list []enrollment.Enrollment) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

// SwapEnrollment replaces a temporary optimistic record with the
// server-issued one in a single step, so no reader ever sees both.
// PRE: tempID names the optimistic record; e is the server record
// POST: The temporary record is gone and e is present
func (s *Store) SwapEnrollment(tempID string, e enrollment.Enrollment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.enrollments, tempID)
	s.enrollments[e.ID] = e
	s.rev++
}
