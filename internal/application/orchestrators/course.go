package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"classdesk/internal/domain/course"
)

// CourseCache defines the cache access course mutations need.
type CourseCache interface {
	GetCourseByID(id string) (course.Course, bool)
	UpsertCourse(c course.Course)
	RemoveCourseCascade(id string) (sessionsRemoved, enrollmentsRemoved int)
}

// CourseAPI defines the backend calls for course mutations.
type CourseAPI interface {
	CreateCourse(ctx context.Context, c course.Course) (course.Course, error)
	UpdateCourse(ctx context.Context, c course.Course) (course.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// CourseDeps holds dependencies for course orchestrators.
type CourseDeps struct {
	Cache    CourseCache
	API      CourseAPI
	InFlight *Registry
	Notify   Notifier    // optional
	Alive    func() bool // optional
}

// CreateCourseInput carries input for course creation.
type CreateCourseInput struct {
	Title        string
	Description  string
	Category     string
	InstructorID string
}

// ExecuteCreateCourse creates a course and caches the server record.
// PRE: InstructorID identifies the owning instructor
// POST: On success the server-issued course is in the cache
func ExecuteCreateCourse(ctx context.Context, input CreateCourseInput, deps CourseDeps) (course.Course, error) {
	draft := course.Course{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		InstructorID: input.InstructorID,
	}
	if err := draft.Validate(); err != nil {
		return course.Course{}, err
	}

	created, err := deps.API.CreateCourse(ctx, draft)
	if err != nil {
		notifyFailure(deps.Notify, OpCreateCourse, "", err)
		return course.Course{}, fmt.Errorf("create course: %w", err)
	}

	if viewAlive(deps.Alive) {
		deps.Cache.UpsertCourse(created)
	}
	slog.Info("course_event", "event", "course_created", "course_id", created.ID, "instructor_id", input.InstructorID)
	notifySuccess(deps.Notify, OpCreateCourse, created.ID, "course created")
	return created, nil
}

// UpdateCourseInput carries input for course updates.
type UpdateCourseInput struct {
	CourseID    string
	Title       string
	Description string
	Category    string
}

// ExecuteUpdateCourse applies a course edit optimistically.
// PRE: The course exists in the cache
// POST: On success the server record is cached; on failure the prior record
//       is restored
func ExecuteUpdateCourse(ctx context.Context, input UpdateCourseInput, deps CourseDeps) error {
	if input.CourseID == "" {
		return errors.New("course id is required")
	}
	if err := deps.InFlight.Begin(OpUpdateCourse, input.CourseID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpUpdateCourse, input.CourseID)

	prior, ok := deps.Cache.GetCourseByID(input.CourseID)
	if !ok {
		return errors.New("course not found")
	}

	updated := prior
	updated.Title = input.Title
	updated.Description = input.Description
	updated.Category = input.Category
	if err := updated.Validate(); err != nil {
		return err
	}
	deps.Cache.UpsertCourse(updated)

	fromServer, err := deps.API.UpdateCourse(ctx, updated)
	if err != nil {
		if viewAlive(deps.Alive) {
			deps.Cache.UpsertCourse(prior)
		}
		notifyFailure(deps.Notify, OpUpdateCourse, input.CourseID, err)
		return fmt.Errorf("update course: %w", err)
	}

	if viewAlive(deps.Alive) && fromServer.ID != "" {
		deps.Cache.UpsertCourse(fromServer)
	}
	slog.Info("course_event", "event", "course_updated", "course_id", input.CourseID)
	notifySuccess(deps.Notify, OpUpdateCourse, input.CourseID, "course updated")
	return nil
}

// DeleteCourseInput carries input for course deletion.
type DeleteCourseInput struct {
	CourseID string
}

// ExecuteDeleteCourse deletes a course after server confirmation and cascades
// the removal to its sessions and enrollments.
// PRE: CourseID is non-empty
// POST: On success neither the course nor any dependent session or
//       enrollment remains in the cache
// INVARIANT: The cascade is one cache step; no orphan is ever observable
func ExecuteDeleteCourse(ctx context.Context, input DeleteCourseInput, deps CourseDeps) error {
	if input.CourseID == "" {
		return errors.New("course id is required")
	}
	if err := deps.InFlight.Begin(OpDeleteCourse, input.CourseID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpDeleteCourse, input.CourseID)

	if err := deps.API.DeleteCourse(ctx, input.CourseID); err != nil {
		notifyFailure(deps.Notify, OpDeleteCourse, input.CourseID, err)
		return fmt.Errorf("delete course: %w", err)
	}

	if viewAlive(deps.Alive) {
		sessions, enrollments := deps.Cache.RemoveCourseCascade(input.CourseID)
		slog.Info("course_event", "event", "course_deleted", "course_id", input.CourseID, "sessions_removed", sessions, "enrollments_removed", enrollments)
	}
	notifySuccess(deps.Notify, OpDeleteCourse, input.CourseID, "course deleted")
	return nil
}
