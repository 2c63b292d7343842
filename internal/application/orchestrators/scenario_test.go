package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"classdesk/internal/adapters/api"
	"classdesk/internal/application/projections"
	"classdesk/internal/domain/enrollment"
	"classdesk/internal/domain/user"
	"classdesk/internal/store"
)

// fakeBackend is an in-memory stand-in for the platform REST API. It speaks
// the same mixed envelopes as the real backend: courses arrive as a raw array
// with mongo-style _id keys, enrollments wrapped under data.
type fakeBackend struct {
	mu          sync.Mutex
	courses     map[string]map[string]any
	enrollments map[string]map[string]any
	nextID      int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		courses:     make(map[string]map[string]any),
		enrollments: make(map[string]map[string]any),
	}
}

func (b *fakeBackend) id(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []any{
			map[string]any{"_id": "i1", "name": "Ines", "email": "ines@test.com", "role": "instructor"},
			map[string]any{"_id": "s1", "name": "Sam", "email": "sam@test.com", "role": "student"},
		})
	})
	mux.HandleFunc("GET /session", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"data": []any{}})
	})

	mux.HandleFunc("GET /course", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := make([]any, 0, len(b.courses))
		for _, c := range b.courses {
			list = append(list, c)
		}
		writeJSON(w, list)
	})
	mux.HandleFunc("POST /course", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		defer b.mu.Unlock()
		in["_id"] = b.id("c")
		b.courses[in["_id"].(string)] = in
		writeJSON(w, map[string]any{"course": in})
	})
	mux.HandleFunc("DELETE /course/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		if _, ok := b.courses[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(b.courses, id)
		for eid, e := range b.enrollments {
			if e["courseId"] == id {
				delete(b.enrollments, eid)
			}
		}
		writeJSON(w, map[string]any{"message": "deleted"})
	})

	mux.HandleFunc("GET /enrollment", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := make([]any, 0, len(b.enrollments))
		for _, e := range b.enrollments {
			list = append(list, e)
		}
		writeJSON(w, map[string]any{"data": map[string]any{"list": list}})
	})
	mux.HandleFunc("POST /enrollment", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		defer b.mu.Unlock()
		in["_id"] = b.id("e")
		in["status"] = enrollment.StatusPending
		b.enrollments[in["_id"].(string)] = in
		writeJSON(w, map[string]any{"data": in})
	})
	mux.HandleFunc("PATCH /enrollment/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		defer b.mu.Unlock()
		e, ok := b.enrollments[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		e["status"] = in["status"]
		writeJSON(w, map[string]any{"data": e})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// TestScenario_CourseLifecycleAcrossRoles walks the full lifecycle over the
// real REST client and cache: an instructor publishes a course, a student
// requests enrollment, the instructor approves, and finally deletes the
// course. Each step is checked through the role projections both sides see.
func TestScenario_CourseLifecycleAcrossRoles(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := api.New(srv.URL, "test-token")
	s := store.New()
	ix := store.NewIndex(s)
	reg := NewRegistry()
	ctx := context.Background()

	s.UpsertUser(user.User{ID: "i1", Name: "Ines", Email: "ines@test.com", Role: user.RoleInstructor})
	s.UpsertUser(user.User{ID: "s1", Name: "Sam", Email: "sam@test.com", Role: user.RoleStudent})

	cDeps := CourseDeps{Cache: s, API: client, InFlight: reg}
	eDeps := EnrollDeps{Cache: s, Relations: ix, API: client, InFlight: reg}
	rDeps := ReviewEnrollmentDeps{Cache: s, API: client, InFlight: reg}
	projDeps := projections.Deps{Entities: s, Relations: ix}

	// Instructor publishes a course.
	created, err := ExecuteCreateCourse(ctx, CreateCourseInput{
		Title:        "Distributed Systems",
		Description:  "Consensus and **replication**.",
		Category:     "programming",
		InstructorID: "i1",
	}, cDeps)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if created.ID == "" {
		t.Fatal("server course id missing")
	}

	// Student requests enrollment.
	enrolled, err := ExecuteEnroll(ctx, EnrollInput{CourseID: created.ID, StudentID: "s1"}, eDeps)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if enrolled.IsTemporary() {
		t.Fatalf("enrollment id=%q should be the server id", enrolled.ID)
	}

	instructorView, err := projections.QueryInstructorDashboard(projections.InstructorDashboardQuery{InstructorID: "i1"}, projDeps)
	if err != nil {
		t.Fatalf("instructor projection: %v", err)
	}
	if len(instructorView.PendingRequests) != 1 {
		t.Fatalf("pending=%d want 1", len(instructorView.PendingRequests))
	}
	studentView, err := projections.QueryStudentDashboard(projections.StudentDashboardQuery{StudentID: "s1"}, projDeps)
	if err != nil {
		t.Fatalf("student projection: %v", err)
	}
	if status, ok := studentView.StatusFor(created.ID); !ok || status != enrollment.StatusPending {
		t.Fatalf("status=%q ok=%v want pending", status, ok)
	}

	// Instructor approves.
	if err := ExecuteApproveEnrollment(ctx, ReviewEnrollmentInput{EnrollmentID: enrolled.ID}, rDeps); err != nil {
		t.Fatalf("approve: %v", err)
	}
	studentView, err = projections.QueryStudentDashboard(projections.StudentDashboardQuery{StudentID: "s1"}, projDeps)
	if err != nil {
		t.Fatalf("student projection: %v", err)
	}
	if len(studentView.EnrolledCourses) != 1 || studentView.EnrolledCourses[0].ID != created.ID {
		t.Fatalf("enrolled courses=%v want just %q", studentView.EnrolledCourses, created.ID)
	}
	instructorView, err = projections.QueryInstructorDashboard(projections.InstructorDashboardQuery{InstructorID: "i1"}, projDeps)
	if err != nil {
		t.Fatalf("instructor projection: %v", err)
	}
	if len(instructorView.PendingRequests) != 0 {
		t.Fatalf("pending=%d want 0 after approval", len(instructorView.PendingRequests))
	}

	// Instructor deletes the course. The cascade must leave no dangling
	// record on either side.
	if err := ExecuteDeleteCourse(ctx, DeleteCourseInput{CourseID: created.ID}, cDeps); err != nil {
		t.Fatalf("delete course: %v", err)
	}
	if got := len(s.AllCourses()); got != 0 {
		t.Fatalf("courses=%d want 0", got)
	}
	if got := len(s.AllEnrollments()); got != 0 {
		t.Fatalf("enrollments=%d want 0", got)
	}
	studentView, err = projections.QueryStudentDashboard(projections.StudentDashboardQuery{StudentID: "s1"}, projDeps)
	if err != nil {
		t.Fatalf("student projection: %v", err)
	}
	if len(studentView.EnrolledCourses) != 0 || len(studentView.MyEnrollments) != 0 {
		t.Fatalf("student view=%+v want empty after cascade", studentView)
	}
}

// TestScenario_RefreshAllRebuildsFromBackend verifies a cold cache converges
// to the backend state through a full sync over the real client, including
// the mixed list envelopes the endpoints use.
func TestScenario_RefreshAllRebuildsFromBackend(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	client := api.New(srv.URL, "test-token")
	ctx := context.Background()

	// Populate the backend through a warm client, then sync a cold cache.
	warm := store.New()
	cDeps := CourseDeps{Cache: warm, API: client}
	created, err := ExecuteCreateCourse(ctx, CreateCourseInput{Title: "Go", Category: "programming", InstructorID: "i1"}, cDeps)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if _, err := client.CreateEnrollment(ctx, created.ID, "s1"); err != nil {
		t.Fatalf("create enrollment: %v", err)
	}

	cold := store.New()
	result, err := ExecuteRefreshAll(ctx, RefreshDeps{Cache: cold, API: client})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.Users != 2 || result.Courses != 1 || result.Enrollments != 1 {
		t.Fatalf("result=%+v want 2 users, 1 course, 1 enrollment", result)
	}
	if _, ok := cold.GetCourseByID(created.ID); !ok {
		t.Fatal("synced cache should hold the backend course")
	}
	all := cold.AllEnrollments()
	if len(all) != 1 || all[0].CourseID != created.ID || all[0].StudentID != "s1" {
		t.Fatalf("enrollments=%v want the backend record", all)
	}
}
