package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"classdesk/internal/domain/enrollment"
)

// EnrollmentWriter defines the cache mutations enrollment needs.
type EnrollmentWriter interface {
	UpsertEnrollment(e enrollment.Enrollment)
	RemoveEnrollment(id string)
	SwapEnrollment(tempID string, e enrollment.Enrollment)
}

// StudentEnrollments defines the relation lookup used for duplicate checks.
type StudentEnrollments interface {
	EnrollmentsByStudent(studentID string) []enrollment.Enrollment
}

// EnrollmentCreateAPI defines the backend call for creating an enrollment.
type EnrollmentCreateAPI interface {
	CreateEnrollment(ctx context.Context, courseID, studentID string) (enrollment.Enrollment, error)
}

// EnrollInput carries input for the enroll orchestrator.
type EnrollInput struct {
	CourseID  string
	StudentID string
}

// EnrollDeps holds dependencies for Enroll.
type EnrollDeps struct {
	Cache     EnrollmentWriter
	Relations StudentEnrollments
	API       EnrollmentCreateAPI
	InFlight  *Registry
	Notify    Notifier    // optional: nil skips notifications
	Alive     func() bool // optional: nil means the view never tears down
}

// ExecuteEnroll requests enrollment in a course with an optimistic pending
// record that is visible immediately.
// PRE: CourseID and StudentID are canonical ids
// POST: On success exactly one enrollment for (student, course) remains, the
//       server-issued record; on failure the optimistic record is gone
// INVARIANT: The temporary record always carries the tmp- id prefix
func ExecuteEnroll(ctx context.Context, input EnrollInput, deps EnrollDeps) (enrollment.Enrollment, error) {
	if input.CourseID == "" || input.StudentID == "" {
		return enrollment.Enrollment{}, errors.New("course and student are required")
	}

	pairKey := input.CourseID + "/" + input.StudentID
	if err := deps.InFlight.Begin(OpEnroll, pairKey); err != nil {
		return enrollment.Enrollment{}, err
	}
	defer deps.InFlight.End(OpEnroll, pairKey)

	// A live (non-rejected) enrollment for the pair blocks a duplicate.
	for _, existing := range deps.Relations.EnrollmentsByStudent(input.StudentID) {
		if existing.Blocks(input.CourseID, input.StudentID) {
			return enrollment.Enrollment{}, enrollment.ErrDuplicate
		}
	}

	temp := enrollment.Enrollment{
		ID:        enrollment.TempIDPrefix + uuid.New().String(),
		CourseID:  input.CourseID,
		StudentID: input.StudentID,
		Status:    enrollment.StatusPending,
		CreatedAt: time.Now(),
	}
	deps.Cache.UpsertEnrollment(temp)

	created, err := deps.API.CreateEnrollment(ctx, input.CourseID, input.StudentID)
	if err != nil {
		if viewAlive(deps.Alive) {
			deps.Cache.RemoveEnrollment(temp.ID)
		}
		notifyFailure(deps.Notify, OpEnroll, pairKey, err)
		return enrollment.Enrollment{}, fmt.Errorf("create enrollment: %w", err)
	}

	if viewAlive(deps.Alive) {
		deps.Cache.SwapEnrollment(temp.ID, created)
	}

	slog.Info("enroll_event", "event", "enrollment_requested", "course_id", input.CourseID, "student_id", input.StudentID, "enrollment_id", created.ID)
	notifySuccess(deps.Notify, OpEnroll, created.ID, "enrollment requested")
	return created, nil
}
