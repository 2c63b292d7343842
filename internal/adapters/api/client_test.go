package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"classdesk/internal/domain/enrollment"
)

// TestClient_BearerTokenInjected verifies every request carries the token.
func TestClient_BearerTokenInjected(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token")
	if _, err := c.ListCourses(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("authorization=%q want bearer token", gotAuth)
	}
}

// TestClient_AuthErrorInvokesHook verifies 401/403 map to AuthError and fire
// the injected hook.
func TestClient_AuthErrorInvokesHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookFired := false
	c := New(srv.URL, "expired", WithAuthErrorHook(func() { hookFired = true }))
	_, err := c.ListUsers(context.Background())
	if !IsAuth(err) {
		t.Fatalf("err=%v want AuthError", err)
	}
	if !hookFired {
		t.Fatal("auth hook should fire on 401")
	}
}

// TestClient_ConflictMapsToConflictError verifies 409 handling with the
// server message preserved.
func TestClient_ConflictMapsToConflictError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"enrollment is no longer pending"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	_, err := c.UpdateEnrollmentStatus(context.Background(), "e1", enrollment.StatusApproved)
	if !IsConflict(err) {
		t.Fatalf("err=%v want ConflictError", err)
	}
	if err.Error() != "enrollment is no longer pending" {
		t.Fatalf("message=%q want server message", err.Error())
	}
}

// TestClient_ServerErrorMapsToNetworkError verifies generic non-2xx mapping.
func TestClient_ServerErrorMapsToNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	_, err := c.ListSessions(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) || ne.Status != http.StatusInternalServerError {
		t.Fatalf("err=%v want NetworkError with status 500", err)
	}
	if IsAuth(err) || IsConflict(err) {
		t.Fatal("500 must not classify as auth or conflict")
	}
}

// TestClient_InstructorScopedCourseList verifies the query parameter.
func TestClient_InstructorScopedCourseList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("instructorId"); got != "i1" {
			t.Errorf("instructorId=%q want i1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"_id": "c1", "title": "Go", "instructorId": "i1"}}})
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	courses, err := c.ListCoursesByInstructor(context.Background(), "i1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "c1" {
		t.Fatalf("courses=%v want [c1]", courses)
	}
}

// TestClient_CreateEnrollmentDecodesWrappedItem verifies a wrapped creation
// response round-trips to the domain record.
func TestClient_CreateEnrollmentDecodesWrappedItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s want POST", r.Method)
		}
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"enrollment": map[string]any{
			"_id": "e7", "courseId": payload["courseId"], "studentId": payload["studentId"], "status": "pending",
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	created, err := c.CreateEnrollment(context.Background(), "c1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "e7" || created.CourseID != "c1" || created.StudentID != "s1" {
		t.Fatalf("created=%+v want e7/c1/s1", created)
	}
	if !created.IsPending() {
		t.Fatalf("status=%q want pending", created.Status)
	}
}
