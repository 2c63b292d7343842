package enrollment

import (
	"errors"
	"strings"
	"time"
)

// Business rule constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	// TempIDPrefix marks ids fabricated on the client for optimistic inserts.
	// Server-issued ids never carry it, so a temporary record is always
	// distinguishable until reconciliation swaps it out.
	TempIDPrefix = "tmp-"
)

// Domain errors
var (
	ErrNotPending = errors.New("enrollment is not pending")
	ErrDuplicate  = errors.New("student already has a non-rejected enrollment for this course")
)

// Enrollment holds state for the concept. CourseID and StudentID are
// canonical ids.
type Enrollment struct {
	ID        string
	CourseID  string
	StudentID string
	Status    string
	CreatedAt time.Time
}

// ValidStatus reports whether status names one of the modeled states.
func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}

// Validate checks if the Enrollment has valid data.
// PRE: Enrollment struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: CourseID and StudentID must be set, Status must be known
func (e *Enrollment) Validate() error {
	if strings.TrimSpace(e.CourseID) == "" {
		return errors.New("enrollment must reference a course")
	}
	if strings.TrimSpace(e.StudentID) == "" {
		return errors.New("enrollment must reference a student")
	}
	if !ValidStatus(e.Status) {
		return errors.New("status must be 'pending', 'approved', or 'rejected'")
	}
	return nil
}

// IsPending returns true if the enrollment awaits instructor review.
// INVARIANT: Status field is not mutated
func (e *Enrollment) IsPending() bool {
	return e.Status == StatusPending
}

// IsTemporary returns true if the id was fabricated on the client.
// INVARIANT: No fields are mutated
func (e *Enrollment) IsTemporary() bool {
	return strings.HasPrefix(e.ID, TempIDPrefix)
}

// Approve moves a pending enrollment to the terminal approved state.
// PRE: Enrollment is pending
// POST: Status is approved; approved and rejected are terminal
func (e *Enrollment) Approve() error {
	if e.Status != StatusPending {
		return ErrNotPending
	}
	e.Status = StatusApproved
	return nil
}

// Reject moves a pending enrollment to the terminal rejected state.
// PRE: Enrollment is pending
// POST: Status is rejected; approved and rejected are terminal
func (e *Enrollment) Reject() error {
	if e.Status != StatusPending {
		return ErrNotPending
	}
	e.Status = StatusRejected
	return nil
}

// Blocks reports whether this enrollment prevents the same student from
// enrolling in the same course again. Rejected enrollments may be retried.
func (e *Enrollment) Blocks(courseID, studentID string) bool {
	return e.CourseID == courseID && e.StudentID == studentID && e.Status != StatusRejected
}
