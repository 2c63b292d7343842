package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"classdesk/internal/domain/session"
)

// SessionCache defines the cache access session mutations need.
type SessionCache interface {
	GetSessionByID(id string) (session.Session, bool)
	UpsertSession(se session.Session)
	RemoveSession(id string)
}

// SessionAPI defines the backend calls for session mutations.
type SessionAPI interface {
	CreateSession(ctx context.Context, se session.Session) (session.Session, error)
	UpdateSession(ctx context.Context, se session.Session) (session.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// SessionDeps holds dependencies for session orchestrators.
type SessionDeps struct {
	Cache    SessionCache
	API      SessionAPI
	InFlight *Registry
	Notify   Notifier    // optional
	Alive    func() bool // optional
}

// CreateSessionInput carries input for session creation.
type CreateSessionInput struct {
	CourseID    string
	Title       string
	Description string
	VideoURL    string
	Date        time.Time
}

// ExecuteCreateSession creates a session under a course.
// PRE: CourseID references a course the caller owns
// POST: On success the server-issued session is in the cache
func ExecuteCreateSession(ctx context.Context, input CreateSessionInput, deps SessionDeps) (session.Session, error) {
	draft := session.Session{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		Date:        input.Date,
	}
	if err := draft.Validate(); err != nil {
		return session.Session{}, err
	}

	created, err := deps.API.CreateSession(ctx, draft)
	if err != nil {
		notifyFailure(deps.Notify, OpCreateSession, "", err)
		return session.Session{}, fmt.Errorf("create session: %w", err)
	}

	if viewAlive(deps.Alive) {
		deps.Cache.UpsertSession(created)
	}
	slog.Info("session_event", "event", "session_created", "session_id", created.ID, "course_id", input.CourseID)
	notifySuccess(deps.Notify, OpCreateSession, created.ID, "session created")
	return created, nil
}

// UpdateSessionInput carries input for session updates.
type UpdateSessionInput struct {
	SessionID   string
	Title       string
	Description string
	VideoURL    string
	Date        time.Time
}

// ExecuteUpdateSession applies a session edit optimistically.
// PRE: The session exists in the cache
// POST: On success the server record is cached; on failure the prior record
//       is restored
func ExecuteUpdateSession(ctx context.Context, input UpdateSessionInput, deps SessionDeps) error {
	if input.SessionID == "" {
		return errors.New("session id is required")
	}
	if err := deps.InFlight.Begin(OpUpdateSession, input.SessionID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpUpdateSession, input.SessionID)

	prior, ok := deps.Cache.GetSessionByID(input.SessionID)
	if !ok {
		return errors.New("session not found")
	}

	updated := prior
	updated.Title = input.Title
	updated.Description = input.Description
	updated.VideoURL = input.VideoURL
	updated.Date = input.Date
	if err := updated.Validate(); err != nil {
		return err
	}
	deps.Cache.UpsertSession(updated)

	fromServer, err := deps.API.UpdateSession(ctx, updated)
	if err != nil {
		if viewAlive(deps.Alive) {
			deps.Cache.UpsertSession(prior)
		}
		notifyFailure(deps.Notify, OpUpdateSession, input.SessionID, err)
		return fmt.Errorf("update session: %w", err)
	}

	if viewAlive(deps.Alive) && fromServer.ID != "" {
		deps.Cache.UpsertSession(fromServer)
	}
	slog.Info("session_event", "event", "session_updated", "session_id", input.SessionID)
	notifySuccess(deps.Notify, OpUpdateSession, input.SessionID, "session updated")
	return nil
}

// DeleteSessionInput carries input for session deletion.
type DeleteSessionInput struct {
	SessionID string
}

// ExecuteDeleteSession deletes a session after server confirmation.
// PRE: SessionID is non-empty
// POST: On success the session is gone from the cache
func ExecuteDeleteSession(ctx context.Context, input DeleteSessionInput, deps SessionDeps) error {
	if input.SessionID == "" {
		return errors.New("session id is required")
	}
	if err := deps.InFlight.Begin(OpDeleteSession, input.SessionID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpDeleteSession, input.SessionID)

	if err := deps.API.DeleteSession(ctx, input.SessionID); err != nil {
		notifyFailure(deps.Notify, OpDeleteSession, input.SessionID, err)
		return fmt.Errorf("delete session: %w", err)
	}

	if viewAlive(deps.Alive) {
		deps.Cache.RemoveSession(input.SessionID)
	}
	slog.Info("session_event", "event", "session_deleted", "session_id", input.SessionID)
	notifySuccess(deps.Notify, OpDeleteSession, input.SessionID, "session deleted")
	return nil
}
