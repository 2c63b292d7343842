package projections

import (
	"errors"

	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
)

// StudentDashboardQuery carries query parameters.
type StudentDashboardQuery struct {
	StudentID string
}

// StudentDashboardResult carries the student's view: their enrollments, the
// courses they are approved for, and a per-course status lookup.
type StudentDashboardResult struct {
	MyEnrollments   []enrollment.Enrollment
	EnrolledCourses []course.Course

	statusByCourse map[string]string
}

// StatusFor returns the student's enrollment status for a course, or false
// when the student never enrolled. A rejected status is only reported when no
// non-rejected enrollment exists for the course.
func (r StudentDashboardResult) StatusFor(courseID string) (string, bool) {
	status, ok := r.statusByCourse[courseID]
	return status, ok
}

// QueryStudentDashboard derives the student view.
// PRE: StudentID is non-empty
// POST: EnrolledCourses holds exactly the courses with an approved enrollment
//       that still resolve in the cache
func QueryStudentDashboard(query StudentDashboardQuery, deps Deps) (StudentDashboardResult, error) {
	if query.StudentID == "" {
		return StudentDashboardResult{}, errors.New("student id is required")
	}

	result := StudentDashboardResult{
		MyEnrollments:   []enrollment.Enrollment{},
		EnrolledCourses: []course.Course{},
		statusByCourse:  map[string]string{},
	}

	for _, e := range deps.Relations.EnrollmentsByStudent(query.StudentID) {
		result.MyEnrollments = append(result.MyEnrollments, e)

		// A non-rejected enrollment wins over a rejected one for the same
		// course, so a retried course shows its live status.
		if prev, ok := result.statusByCourse[e.CourseID]; !ok || prev == enrollment.StatusRejected {
			result.statusByCourse[e.CourseID] = e.Status
		}

		if e.Status == enrollment.StatusApproved {
			if c, ok := deps.Entities.GetCourseByID(e.CourseID); ok {
				result.EnrolledCourses = append(result.EnrolledCourses, c)
			}
		}
	}

	return result, nil
}
