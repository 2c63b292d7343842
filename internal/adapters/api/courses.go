package api

import (
	"context"
	"net/http"

	"classdesk/internal/domain/course"
)

// ListCourses fetches the full course collection.
func (c *Client) ListCourses(ctx context.Context) ([]course.Course, error) {
	body, err := c.execute(ctx, http.MethodGet, "/course", nil, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[courseDTO](body)
	if err != nil {
		return nil, err
	}
	return coursesToDomain(dtos), nil
}

// ListCoursesByInstructor fetches the courses owned by one instructor.
func (c *Client) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]course.Course, error) {
	body, err := c.execute(ctx, http.MethodGet, "/course", nil, map[string]string{"instructorId": instructorID})
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[courseDTO](body)
	if err != nil {
		return nil, err
	}
	return coursesToDomain(dtos), nil
}

// GetCourse fetches one course by id.
func (c *Client) GetCourse(ctx context.Context, id string) (course.Course, error) {
	body, err := c.execute(ctx, http.MethodGet, "/course/"+id, nil, nil)
	if err != nil {
		return course.Course{}, err
	}
	dto, err := decodeItem[courseDTO](body, "course", "item", "data")
	if err != nil {
		return course.Course{}, err
	}
	return dto.toDomain(), nil
}

// CreateCourse creates a course and returns the server record.
func (c *Client) CreateCourse(ctx context.Context, draft course.Course) (course.Course, error) {
	payload := map[string]any{
		"title":        draft.Title,
		"description":  draft.Description,
		"category":     draft.Category,
		"instructorId": draft.InstructorID,
	}
	body, err := c.execute(ctx, http.MethodPost, "/course", payload, nil)
	if err != nil {
		return course.Course{}, err
	}
	dto, err := decodeItem[courseDTO](body, "course", "item", "data")
	if err != nil {
		return course.Course{}, err
	}
	return dto.toDomain(), nil
}

// UpdateCourse updates a course and returns the server record.
func (c *Client) UpdateCourse(ctx context.Context, updated course.Course) (course.Course, error) {
	payload := map[string]any{
		"title":       updated.Title,
		"description": updated.Description,
		"category":    updated.Category,
	}
	body, err := c.execute(ctx, http.MethodPut, "/course/"+updated.ID, payload, nil)
	if err != nil {
		return course.Course{}, err
	}
	dto, err := decodeItem[courseDTO](body, "course", "item", "data")
	if err != nil {
		return course.Course{}, err
	}
	return dto.toDomain(), nil
}

// DeleteCourse deletes a course on the server.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	_, err := c.execute(ctx, http.MethodDelete, "/course/"+id, nil, nil)
	return err
}
