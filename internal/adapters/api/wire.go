package api

import (
	"time"

	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/ref"
	"classdesk/internal/domain/session"
	"classdesk/internal/domain/user"
)

// Wire representations. Ids arrive under "_id" or "id" depending on the
// endpoint, and foreign keys may be bare ids or embedded objects; ref.ID
// absorbs the reference shapes, pickID the id spelling.

func pickID(mongoID, plainID ref.ID) string {
	if mongoID != "" {
		return string(mongoID)
	}
	return string(plainID)
}

// parseTime accepts the timestamp spellings the backend emits. Unparseable
// values decode to the zero time rather than failing the whole payload.
func parseTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

type userDTO struct {
	MongoID    ref.ID `json:"_id"`
	PlainID    ref.ID `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	CreatedAt  string `json:"createdAt"`
}

func (d userDTO) toDomain() user.User {
	return user.User{
		ID:         pickID(d.MongoID, d.PlainID),
		Name:       d.Name,
		Email:      d.Email,
		Role:       d.Role,
		IsVerified: d.IsVerified,
		CreatedAt:  parseTime(d.CreatedAt),
	}
}

type courseDTO struct {
	MongoID      ref.ID `json:"_id"`
	PlainID      ref.ID `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	InstructorID ref.ID `json:"instructorId"`
}

func (d courseDTO) toDomain() course.Course {
	return course.Course{
		ID:           pickID(d.MongoID, d.PlainID),
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		InstructorID: string(d.InstructorID),
	}
}

type sessionDTO struct {
	MongoID     ref.ID `json:"_id"`
	PlainID     ref.ID `json:"id"`
	CourseID    ref.ID `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	Date        string `json:"date"`
}

func (d sessionDTO) toDomain() session.Session {
	return session.Session{
		ID:          pickID(d.MongoID, d.PlainID),
		CourseID:    string(d.CourseID),
		Title:       d.Title,
		Description: d.Description,
		VideoURL:    d.VideoURL,
		Date:        parseTime(d.Date),
	}
}

type enrollmentDTO struct {
	MongoID   ref.ID `json:"_id"`
	PlainID   ref.ID `json:"id"`
	CourseID  ref.ID `json:"courseId"`
	StudentID ref.ID `json:"studentId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (d enrollmentDTO) toDomain() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:        pickID(d.MongoID, d.PlainID),
		CourseID:  string(d.CourseID),
		StudentID: string(d.StudentID),
		Status:    d.Status,
		CreatedAt: parseTime(d.CreatedAt),
	}
}

func usersToDomain(dtos []userDTO) []user.User {
	out := make([]user.User, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

func coursesToDomain(dtos []courseDTO) []course.Course {
	out := make([]course.Course, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

func sessionsToDomain(dtos []sessionDTO) []session.Session {
	out := make([]session.Session, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

func enrollmentsToDomain(dtos []enrollmentDTO) []enrollment.Enrollment {
	out := make([]enrollment.Enrollment, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}
