package projections

import (
	"classdesk/internal/domain/user"
)

// AdminUserListQuery carries the admin filter pipeline parameters.
type AdminUserListQuery struct {
	RoleFilter string // exact role, or user.RoleFilterAll / "" for every role
	Search     string // case-insensitive substring over name and email
}

// AdminUserListResult carries the filtered user list. Pagination is applied
// by the view-state controller over FilteredUsers, never over the raw list.
type AdminUserListResult struct {
	FilteredUsers []user.User
	Total         int
}

// QueryAdminUserList derives the admin view: role filter first, then search.
// PRE: none; an empty query matches all users
// POST: Total == len(FilteredUsers)
func QueryAdminUserList(query AdminUserListQuery, deps Deps) (AdminUserListResult, error) {
	result := AdminUserListResult{FilteredUsers: []user.User{}}

	for _, u := range deps.Entities.AllUsers() {
		if query.RoleFilter != "" && query.RoleFilter != user.RoleFilterAll && u.Role != query.RoleFilter {
			continue
		}
		if !u.MatchesSearch(query.Search) {
			continue
		}
		result.FilteredUsers = append(result.FilteredUsers, u)
	}

	result.Total = len(result.FilteredUsers)
	return result, nil
}
