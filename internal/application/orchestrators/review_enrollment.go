package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"classdesk/internal/domain/enrollment"
)

// EnrollmentStatusCache defines the cache access status reviews need.
type EnrollmentStatusCache interface {
	GetEnrollmentByID(id string) (enrollment.Enrollment, bool)
	UpsertEnrollment(e enrollment.Enrollment)
	RemoveEnrollment(id string)
}

// EnrollmentStatusAPI defines the backend calls for reviewing enrollments.
type EnrollmentStatusAPI interface {
	UpdateEnrollmentStatus(ctx context.Context, id, status string) (enrollment.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id string) error
}

// ReviewEnrollmentInput carries input for approve/reject.
type ReviewEnrollmentInput struct {
	EnrollmentID string
}

// ReviewEnrollmentDeps holds dependencies for enrollment review.
type ReviewEnrollmentDeps struct {
	Cache    EnrollmentStatusCache
	API      EnrollmentStatusAPI
	InFlight *Registry
	Notify   Notifier    // optional
	Alive    func() bool // optional
}

// ExecuteApproveEnrollment moves a pending enrollment to approved.
// PRE: The enrollment exists and is pending
// POST: On success the status is terminal approved; on failure the prior
//       status is restored
func ExecuteApproveEnrollment(ctx context.Context, input ReviewEnrollmentInput, deps ReviewEnrollmentDeps) error {
	return reviewEnrollment(ctx, input, deps, enrollment.StatusApproved)
}

// ExecuteRejectEnrollment moves a pending enrollment to rejected.
// PRE: The enrollment exists and is pending
// POST: On success the status is terminal rejected; on failure the prior
//       status is restored
func ExecuteRejectEnrollment(ctx context.Context, input ReviewEnrollmentInput, deps ReviewEnrollmentDeps) error {
	return reviewEnrollment(ctx, input, deps, enrollment.StatusRejected)
}

// reviewEnrollment shares the optimistic status transition. Approve and
// reject share one in-flight key so they cannot race each other for the same
// enrollment.
func reviewEnrollment(ctx context.Context, input ReviewEnrollmentInput, deps ReviewEnrollmentDeps, status string) error {
	if input.EnrollmentID == "" {
		return errors.New("enrollment id is required")
	}
	if err := deps.InFlight.Begin(OpReviewEnrollment, input.EnrollmentID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpReviewEnrollment, input.EnrollmentID)

	current, ok := deps.Cache.GetEnrollmentByID(input.EnrollmentID)
	if !ok {
		return errors.New("enrollment not found")
	}
	prior := current.Status

	updated := current
	var transitionErr error
	if status == enrollment.StatusApproved {
		transitionErr = updated.Approve()
	} else {
		transitionErr = updated.Reject()
	}
	if transitionErr != nil {
		return transitionErr
	}
	deps.Cache.UpsertEnrollment(updated)

	fromServer, err := deps.API.UpdateEnrollmentStatus(ctx, input.EnrollmentID, status)
	if err != nil {
		if viewAlive(deps.Alive) {
			if cur, still := deps.Cache.GetEnrollmentByID(input.EnrollmentID); still {
				cur.Status = prior
				deps.Cache.UpsertEnrollment(cur)
			}
		}
		notifyFailure(deps.Notify, OpReviewEnrollment, input.EnrollmentID, err)
		return fmt.Errorf("update enrollment status: %w", err)
	}

	if viewAlive(deps.Alive) && fromServer.ID != "" {
		deps.Cache.UpsertEnrollment(fromServer)
	}

	slog.Info("enroll_event", "event", "enrollment_reviewed", "enrollment_id", input.EnrollmentID, "status", status)
	notifySuccess(deps.Notify, OpReviewEnrollment, input.EnrollmentID, "enrollment "+status)
	return nil
}

// ExecuteDeleteEnrollment removes an enrollment after server confirmation.
// PRE: The enrollment id is non-empty
// POST: On success the record is gone from the cache
func ExecuteDeleteEnrollment(ctx context.Context, input ReviewEnrollmentInput, deps ReviewEnrollmentDeps) error {
	if input.EnrollmentID == "" {
		return errors.New("enrollment id is required")
	}
	if err := deps.InFlight.Begin(OpDeleteEnrollment, input.EnrollmentID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpDeleteEnrollment, input.EnrollmentID)

	if err := deps.API.DeleteEnrollment(ctx, input.EnrollmentID); err != nil {
		notifyFailure(deps.Notify, OpDeleteEnrollment, input.EnrollmentID, err)
		return fmt.Errorf("delete enrollment: %w", err)
	}

	if viewAlive(deps.Alive) {
		deps.Cache.RemoveEnrollment(input.EnrollmentID)
	}
	slog.Info("enroll_event", "event", "enrollment_deleted", "enrollment_id", input.EnrollmentID)
	notifySuccess(deps.Notify, OpDeleteEnrollment, input.EnrollmentID, "enrollment removed")
	return nil
}
