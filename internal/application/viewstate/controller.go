// Package viewstate holds the logic-bearing UI state of a dashboard:
// selection, search and role filters, pagination, and view mode. It is a pure
// state machine over projected data; it never touches the entity cache.
package viewstate

import (
	"classdesk/internal/domain/session"
	"classdesk/internal/domain/user"
)

// View mode constants. ViewMode is presentational only and never affects
// selection, filtering or pagination.
const (
	ViewModeCards = "cards"
	ViewModeTable = "table"
)

// DefaultPageSize is the default number of rows per page.
const DefaultPageSize = 10

// SessionLister is the relation lookup used to pick a default session.
type SessionLister interface {
	SessionsByCourse(courseID string) []session.Session
}

// Controller owns the view state for one dashboard instance.
type Controller struct {
	selectedCourseID  string
	selectedSessionID string
	searchTerm        string
	roleFilter        string
	currentPage       int
	pageSize          int
	viewMode          string
}

// NewController creates a Controller with defaults: page 1, role filter
// "all", cards view.
func NewController() *Controller {
	return &Controller{
		roleFilter:  user.RoleFilterAll,
		currentPage: 1,
		pageSize:    DefaultPageSize,
		viewMode:    ViewModeCards,
	}
}

// SelectedCourseID returns the selected course id, or "".
func (c *Controller) SelectedCourseID() string { return c.selectedCourseID }

// SelectedSessionID returns the selected session id, or "".
func (c *Controller) SelectedSessionID() string { return c.selectedSessionID }

// SearchTerm returns the current search term.
func (c *Controller) SearchTerm() string { return c.searchTerm }

// RoleFilter returns the current role filter.
func (c *Controller) RoleFilter() string { return c.roleFilter }

// CurrentPage returns the current 1-indexed page.
func (c *Controller) CurrentPage() int { return c.currentPage }

// PageSize returns the rows-per-page setting.
func (c *Controller) PageSize() int { return c.pageSize }

// ViewMode returns the presentational mode, cards or table.
func (c *Controller) ViewMode() string { return c.viewMode }

// SelectCourse selects a course and defaults the session selection to the
// course's first session.
// PRE: relations resolves sessions in course order
// POST: SelectedSessionID is the first session of the course, or "" when the
//       course has none
func (c *Controller) SelectCourse(courseID string, relations SessionLister) {
	c.selectedCourseID = courseID
	c.selectedSessionID = ""
	if courseID == "" || relations == nil {
		return
	}
	if sessions := relations.SessionsByCourse(courseID); len(sessions) > 0 {
		c.selectedSessionID = sessions[0].ID
	}
}

// SelectSession selects a session within the current course.
func (c *Controller) SelectSession(sessionID string) {
	c.selectedSessionID = sessionID
}

// SetSearchTerm updates the search term. Any change resets to page 1.
func (c *Controller) SetSearchTerm(term string) {
	if term != c.searchTerm {
		c.currentPage = 1
	}
	c.searchTerm = term
}

// SetRoleFilter updates the role filter. Any change resets to page 1.
func (c *Controller) SetRoleFilter(role string) {
	if role != c.roleFilter {
		c.currentPage = 1
	}
	c.roleFilter = role
}

// SetViewMode switches between cards and table. Unknown values keep cards.
func (c *Controller) SetViewMode(mode string) {
	if mode != ViewModeTable {
		mode = ViewModeCards
	}
	c.viewMode = mode
}

// SetPageSize changes the rows-per-page setting and re-clamps the page.
// PRE: size > 0; non-positive sizes fall back to the default
func (c *Controller) SetPageSize(size, filteredCount int) {
	if size < 1 {
		size = DefaultPageSize
	}
	c.pageSize = size
	c.ClampPage(filteredCount)
}

// SetPage moves to a page, clamped into the valid range for filteredCount.
func (c *Controller) SetPage(page, filteredCount int) {
	c.currentPage = page
	c.ClampPage(filteredCount)
}

// TotalPages computes ceil(filteredCount / pageSize), minimum 1.
func (c *Controller) TotalPages(filteredCount int) int {
	totalPages := (filteredCount + c.pageSize - 1) / c.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// ClampPage forces the current page into [1, TotalPages]. Callers run it
// after every projection whose filtered set may have shrunk.
// POST: 1 <= CurrentPage <= TotalPages(filteredCount)
func (c *Controller) ClampPage(filteredCount int) {
	totalPages := c.TotalPages(filteredCount)
	if c.currentPage > totalPages {
		c.currentPage = totalPages
	}
	if c.currentPage < 1 {
		c.currentPage = 1
	}
}

// PageSlice returns the items on the given 1-indexed page.
// PRE: page >= 1, pageSize > 0
// POST: Returns an empty slice past the end, never panics
func PageSlice[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
