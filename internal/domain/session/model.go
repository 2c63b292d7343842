package session

import (
	"errors"
	"strings"
	"time"
)

// Session holds state for the concept. CourseID is the canonical id of the
// parent course; a session never exists without one.
type Session struct {
	ID          string
	CourseID    string
	Title       string
	Description string
	VideoURL    string
	Date        time.Time
}

// Validate checks if the Session has valid data.
// PRE: Session struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Title and CourseID must not be empty
func (s *Session) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("session title cannot be empty")
	}
	if s.CourseID == "" {
		return errors.New("session must belong to a course")
	}
	return nil
}
