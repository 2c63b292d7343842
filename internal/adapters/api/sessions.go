package api

import (
	"context"
	"net/http"
	"time"

	"classdesk/internal/domain/session"
)

// ListSessions fetches the full session collection.
func (c *Client) ListSessions(ctx context.Context) ([]session.Session, error) {
	body, err := c.execute(ctx, http.MethodGet, "/session", nil, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[sessionDTO](body)
	if err != nil {
		return nil, err
	}
	return sessionsToDomain(dtos), nil
}

// GetSession fetches one session by id.
func (c *Client) GetSession(ctx context.Context, id string) (session.Session, error) {
	body, err := c.execute(ctx, http.MethodGet, "/session/"+id, nil, nil)
	if err != nil {
		return session.Session{}, err
	}
	dto, err := decodeItem[sessionDTO](body, "session", "item", "data")
	if err != nil {
		return session.Session{}, err
	}
	return dto.toDomain(), nil
}

// CreateSession creates a session and returns the server record.
func (c *Client) CreateSession(ctx context.Context, draft session.Session) (session.Session, error) {
	body, err := c.execute(ctx, http.MethodPost, "/session", sessionPayload(draft), nil)
	if err != nil {
		return session.Session{}, err
	}
	dto, err := decodeItem[sessionDTO](body, "session", "item", "data")
	if err != nil {
		return session.Session{}, err
	}
	return dto.toDomain(), nil
}

// UpdateSession updates a session and returns the server record.
func (c *Client) UpdateSession(ctx context.Context, updated session.Session) (session.Session, error) {
	body, err := c.execute(ctx, http.MethodPut, "/session/"+updated.ID, sessionPayload(updated), nil)
	if err != nil {
		return session.Session{}, err
	}
	dto, err := decodeItem[sessionDTO](body, "session", "item", "data")
	if err != nil {
		return session.Session{}, err
	}
	return dto.toDomain(), nil
}

// DeleteSession deletes a session on the server.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	_, err := c.execute(ctx, http.MethodDelete, "/session/"+id, nil, nil)
	return err
}

func sessionPayload(se session.Session) map[string]any {
	payload := map[string]any{
		"courseId":    se.CourseID,
		"title":       se.Title,
		"description": se.Description,
		"videoUrl":    se.VideoURL,
	}
	if !se.Date.IsZero() {
		payload["date"] = se.Date.Format(time.RFC3339)
	}
	return payload
}
