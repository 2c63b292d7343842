package api

import (
	"context"
	"net/http"

	"classdesk/internal/domain/enrollment"
)

// ListEnrollments fetches the full enrollment collection.
func (c *Client) ListEnrollments(ctx context.Context) ([]enrollment.Enrollment, error) {
	body, err := c.execute(ctx, http.MethodGet, "/enrollment", nil, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[enrollmentDTO](body)
	if err != nil {
		return nil, err
	}
	return enrollmentsToDomain(dtos), nil
}

// CreateEnrollment requests enrollment of a student in a course. New
// enrollments always start pending on the server.
func (c *Client) CreateEnrollment(ctx context.Context, courseID, studentID string) (enrollment.Enrollment, error) {
	payload := map[string]any{
		"courseId":  courseID,
		"studentId": studentID,
	}
	body, err := c.execute(ctx, http.MethodPost, "/enrollment", payload, nil)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	dto, err := decodeItem[enrollmentDTO](body, "enrollment", "item", "data")
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	return dto.toDomain(), nil
}

// UpdateEnrollmentStatus patches an enrollment's status and returns the
// server record.
func (c *Client) UpdateEnrollmentStatus(ctx context.Context, id, status string) (enrollment.Enrollment, error) {
	payload := map[string]any{"status": status}
	body, err := c.execute(ctx, http.MethodPatch, "/enrollment/"+id, payload, nil)
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	dto, err := decodeItem[enrollmentDTO](body, "enrollment", "item", "data")
	if err != nil {
		return enrollment.Enrollment{}, err
	}
	return dto.toDomain(), nil
}

// DeleteEnrollment deletes an enrollment on the server.
func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	_, err := c.execute(ctx, http.MethodDelete, "/enrollment/"+id, nil, nil)
	return err
}
