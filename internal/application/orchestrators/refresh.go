package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"classdesk/internal/domain/course"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/session"
	"classdesk/internal/domain/user"
)

// CollectionReplacer defines the cache replacement calls a full sync needs.
type CollectionReplacer interface {
	ReplaceAllUsers(list []user.User)
	ReplaceAllCourses(list []course.Course)
	ReplaceAllSessions(list []session.Session)
	ReplaceAllEnrollments(list []enrollment.Enrollment)
}

// CollectionFetcher defines the backend list calls a full sync needs.
type CollectionFetcher interface {
	ListUsers(ctx context.Context) ([]user.User, error)
	ListCourses(ctx context.Context) ([]course.Course, error)
	ListSessions(ctx context.Context) ([]session.Session, error)
	ListEnrollments(ctx context.Context) ([]enrollment.Enrollment, error)
}

// RefreshDeps holds dependencies for RefreshAll.
type RefreshDeps struct {
	Cache  CollectionReplacer
	API    CollectionFetcher
	Notify Notifier // optional
}

// RefreshResult carries per-collection counts after a sync.
type RefreshResult struct {
	Users       int
	Courses     int
	Sessions    int
	Enrollments int
}

// ExecuteRefreshAll fetches the four collections in parallel and replaces the
// cache contents. Collections are independent: each successful fetch replaces
// its collection even when another fetch fails, and the joined error reports
// every failure.
// PRE: none
// POST: Every collection whose fetch succeeded reflects the server state
func ExecuteRefreshAll(ctx context.Context, deps RefreshDeps) (RefreshResult, error) {
	var (
		wg          sync.WaitGroup
		users       []user.User
		courses     []course.Course
		sessions    []session.Session
		enrollments []enrollment.Enrollment
		errUsers    error
		errCourses  error
		errSessions error
		errEnroll   error
	)

	wg.Add(4)
	go func() { defer wg.Done(); users, errUsers = deps.API.ListUsers(ctx) }()
	go func() { defer wg.Done(); courses, errCourses = deps.API.ListCourses(ctx) }()
	go func() { defer wg.Done(); sessions, errSessions = deps.API.ListSessions(ctx) }()
	go func() { defer wg.Done(); enrollments, errEnroll = deps.API.ListEnrollments(ctx) }()
	wg.Wait()

	var result RefreshResult
	if errUsers == nil {
		deps.Cache.ReplaceAllUsers(users)
		result.Users = len(users)
	}
	if errCourses == nil {
		deps.Cache.ReplaceAllCourses(courses)
		result.Courses = len(courses)
	}
	if errSessions == nil {
		deps.Cache.ReplaceAllSessions(sessions)
		result.Sessions = len(sessions)
	}
	if errEnroll == nil {
		deps.Cache.ReplaceAllEnrollments(enrollments)
		result.Enrollments = len(enrollments)
	}

	err := errors.Join(errUsers, errCourses, errSessions, errEnroll)
	if err != nil {
		notifyFailure(deps.Notify, OpRefreshAll, "", err)
		return result, err
	}

	slog.Info("sync_event", "event", "collections_refreshed",
		"users", result.Users, "courses", result.Courses,
		"sessions", result.Sessions, "enrollments", result.Enrollments)
	return result, nil
}
