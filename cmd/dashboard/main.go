package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"classdesk/internal/adapters/api"
	"classdesk/internal/adapters/cache"
	"classdesk/internal/adapters/notify"
	"classdesk/internal/adapters/render"
	"classdesk/internal/application/orchestrators"
	"classdesk/internal/application/projections"
	"classdesk/internal/application/viewstate"
	"classdesk/internal/store"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	baseURL := envOrDefault("CLASSDESK_API_URL", "http://localhost:4000/api")
	token := os.Getenv("CLASSDESK_API_TOKEN")
	cachePath := envOrDefault("CLASSDESK_CACHE_PATH", "classdesk.db")

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	slog.Info("dashboard_event", "event", "starting", "version", version, "api_url", baseURL)

	ctx := context.Background()

	snapshots, err := cache.Open(cachePath)
	if err != nil {
		log.Fatalf("failed to open snapshot cache: %v", err)
	}
	defer snapshots.Close()

	s := store.New()
	ix := store.NewIndex(s)

	// Warm-start from the last snapshot so the dashboard has data before the
	// first sync completes (or when launched offline).
	if snap, err := snapshots.Load(ctx); err == nil {
		s.ReplaceAllUsers(snap.Users)
		s.ReplaceAllCourses(snap.Courses)
		s.ReplaceAllSessions(snap.Sessions)
		s.ReplaceAllEnrollments(snap.Enrollments)
		slog.Info("dashboard_event", "event", "snapshot_loaded", "saved_at", snap.SavedAt)
	} else if !errors.Is(err, cache.ErrNoSnapshot) {
		log.Fatalf("failed to load snapshot: %v", err)
	}

	client := api.New(baseURL, token, api.WithAuthErrorHook(func() {
		slog.Warn("dashboard_event", "event", "auth_rejected", "hint", "set CLASSDESK_API_TOKEN to a valid token")
	}))

	me, err := client.Me(ctx)
	if err != nil {
		log.Fatalf("failed to identify the signed-in user: %v", err)
	}

	result, err := orchestrators.ExecuteRefreshAll(ctx, orchestrators.RefreshDeps{
		Cache:  s,
		API:    client,
		Notify: notify.Slog{},
	})
	if err != nil {
		// A partial sync still refreshed the collections that succeeded;
		// the warm snapshot covers the rest.
		slog.Warn("dashboard_event", "event", "sync_incomplete", "error", err)
	}

	if err := snapshots.Save(ctx, cache.Snapshot{
		Users:       s.AllUsers(),
		Courses:     s.AllCourses(),
		Sessions:    s.AllSessions(),
		Enrollments: s.AllEnrollments(),
	}); err != nil {
		slog.Warn("dashboard_event", "event", "snapshot_save_failed", "error", err)
	}

	view, err := projections.ViewFor(me)
	if err != nil {
		log.Fatalf("failed to resolve dashboard: %v", err)
	}
	deps := projections.Deps{Entities: s, Relations: ix}
	dashboard, err := view.Project(deps)
	if err != nil {
		log.Fatalf("failed to project dashboard: %v", err)
	}

	fmt.Printf("Signed in as %s <%s> (%s)\n", me.Name, me.Email, me.Role)
	fmt.Printf("Synced %d users, %d courses, %d sessions, %d enrollments\n\n",
		result.Users, result.Courses, result.Sessions, result.Enrollments)

	switch {
	case dashboard.Instructor != nil:
		printInstructor(dashboard.Instructor, ix)
	case dashboard.Student != nil:
		printStudent(dashboard.Student)
	case dashboard.Admin != nil:
		printAdmin(dashboard.Admin)
	}
}

func printInstructor(d *projections.InstructorDashboardResult, relations viewstate.SessionLister) {
	fmt.Printf("Your courses (%d):\n", len(d.OwnCourses))
	vs := viewstate.NewController()
	for _, c := range d.OwnCourses {
		vs.SelectCourse(c.ID, relations)
		fmt.Printf("  %s [%s]\n", c.Title, c.Category)
		if html, err := render.DescriptionHTML(c.Description); err == nil && c.Description != "" {
			fmt.Printf("    %s\n", html)
		}
		if vs.SelectedSessionID() != "" {
			fmt.Printf("    next session: %s\n", vs.SelectedSessionID())
		}
	}
	fmt.Printf("\nPending enrollment requests (%d):\n", len(d.PendingRequests))
	for _, e := range d.PendingRequests {
		fmt.Printf("  student %s -> course %s\n", e.StudentID, e.CourseID)
	}
}

func printStudent(d *projections.StudentDashboardResult) {
	fmt.Printf("Enrolled courses (%d):\n", len(d.EnrolledCourses))
	for _, c := range d.EnrolledCourses {
		fmt.Printf("  %s [%s]\n", c.Title, c.Category)
	}
	fmt.Printf("\nAll enrollment requests (%d):\n", len(d.MyEnrollments))
	for _, e := range d.MyEnrollments {
		fmt.Printf("  course %s: %s\n", e.CourseID, e.Status)
	}
}

func printAdmin(d *projections.AdminUserListResult) {
	vs := viewstate.NewController()
	vs.ClampPage(d.Total)
	page := viewstate.PageSlice(d.FilteredUsers, vs.CurrentPage(), vs.PageSize())
	fmt.Printf("Users (page %d of %d, %d total):\n", vs.CurrentPage(), vs.TotalPages(d.Total), d.Total)
	for _, u := range page {
		verified := ""
		if u.IsVerified {
			verified = " [verified]"
		}
		fmt.Printf("  %-12s %s <%s>%s\n", u.Role, u.Name, u.Email, verified)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
