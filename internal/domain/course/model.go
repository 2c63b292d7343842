package course

import (
	"errors"
	"strings"
)

// Max length constants for instructor-editable fields.
const (
	MaxTitleLength = 200
)

// Course holds state for the concept. InstructorID is the canonical id of the
// owning instructor; Description is markdown source.
type Course struct {
	ID           string
	Title        string
	Description  string
	Category     string
	InstructorID string
}

// Validate checks if the Course has valid data.
// PRE: Course struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Title must not be empty, InstructorID must be set
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("course title cannot be empty")
	}
	if len(c.Title) > MaxTitleLength {
		return errors.New("course title cannot exceed 200 characters")
	}
	if c.InstructorID == "" {
		return errors.New("course must have an instructor")
	}
	return nil
}

// OwnedBy returns true if the given instructor owns this course.
// INVARIANT: No fields are mutated
func (c *Course) OwnedBy(instructorID string) bool {
	return instructorID != "" && c.InstructorID == instructorID
}
