package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"classdesk/internal/domain/user"
)

// UserCache defines the cache access admin user mutations need.
type UserCache interface {
	GetUserByID(id string) (user.User, bool)
	UpsertUser(u user.User)
	RemoveUser(id string)
}

// UserAPI defines the backend calls for admin user mutations.
type UserAPI interface {
	UpdateUserRole(ctx context.Context, id, role string) (user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserDeps holds dependencies for user orchestrators.
type UserDeps struct {
	Cache    UserCache
	API      UserAPI
	InFlight *Registry
	Notify   Notifier    // optional
	Alive    func() bool // optional
}

// UpdateUserRoleInput carries input for an admin role change.
type UpdateUserRoleInput struct {
	UserID string
	Role   string
}

// ExecuteUpdateUserRole changes a user's role optimistically.
// PRE: Role is one of the modeled roles
// POST: On success the server record is cached; on failure the prior role is
//       restored
func ExecuteUpdateUserRole(ctx context.Context, input UpdateUserRoleInput, deps UserDeps) error {
	if input.UserID == "" {
		return errors.New("user id is required")
	}
	if !user.ValidRole(input.Role) {
		return user.ErrUnknownRole
	}
	if err := deps.InFlight.Begin(OpUpdateUserRole, input.UserID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpUpdateUserRole, input.UserID)

	prior, ok := deps.Cache.GetUserByID(input.UserID)
	if !ok {
		return errors.New("user not found")
	}

	updated := prior
	updated.Role = input.Role
	deps.Cache.UpsertUser(updated)

	fromServer, err := deps.API.UpdateUserRole(ctx, input.UserID, input.Role)
	if err != nil {
		if viewAlive(deps.Alive) {
			deps.Cache.UpsertUser(prior)
		}
		notifyFailure(deps.Notify, OpUpdateUserRole, input.UserID, err)
		return fmt.Errorf("update user role: %w", err)
	}

	if viewAlive(deps.Alive) && fromServer.ID != "" {
		deps.Cache.UpsertUser(fromServer)
	}
	slog.Info("user_event", "event", "user_role_updated", "user_id", input.UserID, "role", input.Role)
	notifySuccess(deps.Notify, OpUpdateUserRole, input.UserID, "role updated")
	return nil
}

// DeleteUserInput carries input for an admin user deletion.
type DeleteUserInput struct {
	UserID string
}

// ExecuteDeleteUser deletes a user after server confirmation.
// PRE: UserID is non-empty
// POST: On success the user is gone from the cache
func ExecuteDeleteUser(ctx context.Context, input DeleteUserInput, deps UserDeps) error {
	if input.UserID == "" {
		return errors.New("user id is required")
	}
	if err := deps.InFlight.Begin(OpDeleteUser, input.UserID); err != nil {
		return err
	}
	defer deps.InFlight.End(OpDeleteUser, input.UserID)

	if err := deps.API.DeleteUser(ctx, input.UserID); err != nil {
		notifyFailure(deps.Notify, OpDeleteUser, input.UserID, err)
		return fmt.Errorf("delete user: %w", err)
	}

	if viewAlive(deps.Alive) {
		deps.Cache.RemoveUser(input.UserID)
	}
	slog.Info("user_event", "event", "user_deleted", "user_id", input.UserID)
	notifySuccess(deps.Notify, OpDeleteUser, input.UserID, "user deleted")
	return nil
}
