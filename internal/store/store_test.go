package store

import (
	"testing"
	"time"

	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/session"
	"classdesk/internal/domain/user"
)

// TestRevision_BumpsOnEveryMutation verifies the memoization counter moves.
func TestRevision_BumpsOnEveryMutation(t *testing.T) {
	s := New()
	r0 := s.Revision()
	s.UpsertCourse(course.Course{ID: "c1", Title: "Go", InstructorID: "i1"})
	r1 := s.Revision()
	if r1 <= r0 {
		t.Fatalf("revision=%d want > %d after upsert", r1, r0)
	}
	s.ReplaceAllSessions(nil)
	if r2 := s.Revision(); r2 <= r1 {
		t.Fatalf("revision=%d want > %d after replaceAll", r2, r1)
	}
}

// TestRemove_AbsentIDDoesNotBumpRevision verifies no-op removals are silent.
func TestRemove_AbsentIDDoesNotBumpRevision(t *testing.T) {
	s := New()
	r0 := s.Revision()
	s.RemoveSession("nope")
	if r1 := s.Revision(); r1 != r0 {
		t.Fatalf("revision=%d want %d for no-op removal", r1, r0)
	}
}

// TestReplaceAll_DiscardsPreviousContents verifies fetch results fully
// replace a collection rather than merging.
func TestReplaceAll_DiscardsPreviousContents(t *testing.T) {
	s := New()
	s.UpsertUser(user.User{ID: "u1", Name: "Old", Email: "old@test.com", Role: user.RoleStudent})
	s.ReplaceAllUsers([]user.User{{ID: "u2", Name: "New", Email: "new@test.com", Role: user.RoleStudent}})
	if _, ok := s.GetUserByID("u1"); ok {
		t.Fatal("replaced collection should not retain old entries")
	}
	if _, ok := s.GetUserByID("u2"); !ok {
		t.Fatal("replaced collection should contain new entries")
	}
}

// TestRemoveCourseCascade_PurgesDependents verifies sessions and enrollments
// of a deleted course disappear in the same step.
func TestRemoveCourseCascade_PurgesDependents(t *testing.T) {
	s := New()
	s.UpsertCourse(course.Course{ID: "c1", Title: "Go", InstructorID: "i1"})
	s.UpsertCourse(course.Course{ID: "c2", Title: "Rust", InstructorID: "i1"})
	s.UpsertSession(session.Session{ID: "se1", CourseID: "c1", Title: "Intro"})
	s.UpsertSession(session.Session{ID: "se2", CourseID: "c1", Title: "Types"})
	s.UpsertSession(session.Session{ID: "se3", CourseID: "c2", Title: "Ownership"})
	s.UpsertEnrollment(enrollment.Enrollment{ID: "e1", CourseID: "c1", StudentID: "s1", Status: enrollment.StatusPending})

	nSessions, nEnrollments := s.RemoveCourseCascade("c1")
	if nSessions != 2 || nEnrollments != 1 {
		t.Fatalf("cascade removed %d/%d want 2/1", nSessions, nEnrollments)
	}
	if _, ok := s.GetCourseByID("c1"); ok {
		t.Fatal("course should be gone")
	}
	for _, id := range []string{"se1", "se2"} {
		if _, ok := s.GetSessionByID(id); ok {
			t.Fatalf("session %s should be cascaded away", id)
		}
	}
	if _, ok := s.GetEnrollmentByID("e1"); ok {
		t.Fatal("enrollment should be cascaded away")
	}
	if _, ok := s.GetSessionByID("se3"); !ok {
		t.Fatal("unrelated session should survive")
	}
}

// TestSwapEnrollment_ReplacesTempRecord verifies reconciliation substitutes
// ids instead of duplicating records.
func TestSwapEnrollment_ReplacesTempRecord(t *testing.T) {
	s := New()
	tempID := enrollment.TempIDPrefix + "123"
	s.UpsertEnrollment(enrollment.Enrollment{ID: tempID, CourseID: "c1", StudentID: "s1", Status: enrollment.StatusPending})
	s.SwapEnrollment(tempID, enrollment.Enrollment{ID: "e9", CourseID: "c1", StudentID: "s1", Status: enrollment.StatusPending})

	if _, ok := s.GetEnrollmentByID(tempID); ok {
		t.Fatal("temporary record should be gone after swap")
	}
	all := s.AllEnrollments()
	if len(all) != 1 || all[0].ID != "e9" {
		t.Fatalf("enrollments=%v want exactly the server record", all)
	}
}

// TestAllSessions_OrderedByDate verifies deterministic session ordering.
func TestAllSessions_OrderedByDate(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.UpsertSession(session.Session{ID: "se2", CourseID: "c1", Title: "Later", Date: base.Add(time.Hour)})
	s.UpsertSession(session.Session{ID: "se1", CourseID: "c1", Title: "Earlier", Date: base})
	all := s.AllSessions()
	if len(all) != 2 || all[0].ID != "se1" || all[1].ID != "se2" {
		t.Fatalf("order=%v want se1 before se2", all)
	}
}
