package api

import (
	"context"
	"net/http"

	"classdesk/internal/domain/user"
)

// ListUsers fetches the full user collection.
func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	body, err := c.execute(ctx, http.MethodGet, "/user", nil, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[userDTO](body)
	if err != nil {
		return nil, err
	}
	return usersToDomain(dtos), nil
}

// Me fetches the authenticated user.
func (c *Client) Me(ctx context.Context) (user.User, error) {
	body, err := c.execute(ctx, http.MethodGet, "/user/me", nil, nil)
	if err != nil {
		return user.User{}, err
	}
	dto, err := decodeItem[userDTO](body, "user", "item", "data")
	if err != nil {
		return user.User{}, err
	}
	return dto.toDomain(), nil
}

// UserUpdate carries the mutable user fields. Empty fields are omitted from
// the request, so a role change does not clobber the name and vice versa.
type UserUpdate struct {
	Name string
	Role string
}

// UpdateUser updates a user and returns the server record.
func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) (user.User, error) {
	payload := map[string]any{}
	if update.Name != "" {
		payload["name"] = update.Name
	}
	if update.Role != "" {
		payload["role"] = update.Role
	}
	body, err := c.execute(ctx, http.MethodPut, "/user/"+id, payload, nil)
	if err != nil {
		return user.User{}, err
	}
	dto, err := decodeItem[userDTO](body, "user", "item", "data")
	if err != nil {
		return user.User{}, err
	}
	return dto.toDomain(), nil
}

// UpdateUserRole changes only the user's role.
func (c *Client) UpdateUserRole(ctx context.Context, id, role string) (user.User, error) {
	return c.UpdateUser(ctx, id, UserUpdate{Role: role})
}

// DeleteUser deletes a user on the server.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.execute(ctx, http.MethodDelete, "/user/"+id, nil, nil)
	return err
}
