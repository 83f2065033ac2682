package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taskdeck/taskdeck/internal/adapters/jsonfile"
	"github.com/taskdeck/taskdeck/internal/adapters/security"
	"github.com/taskdeck/taskdeck/internal/application"
	"github.com/taskdeck/taskdeck/internal/domain"
)

func newTestRouter(t *testing.T) (http.Handler, *application.DataService, *application.AuthService) {
	t.Helper()

	data := application.NewDataService(jsonfile.New(filepath.Join(t.TempDir(), "state.json")))
	auth := application.NewAuthService(application.AuthConfig{Secret: "test-secret-key-12345"}, security.NewBcryptHasher(4))
	return NewRouter(NewHandler(data, auth)), data, auth
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return envelope
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	envelope := decodeEnvelope(t, rec)
	if envelope["status"] != "success" {
		t.Fatalf("expected success envelope, got %v", envelope)
	}
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data field: %v", envelope)
	}
	return data
}

func seedUser(t *testing.T, data *application.DataService, id int, username, email string) domain.User {
	t.Helper()

	user, err := domain.NewUser(id, username, email)
	if err != nil {
		t.Fatalf("new user failed: %v", err)
	}
	data.SaveUser(user)
	return user
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz returned %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestCreateAndGetUser(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/",
		`{"user_id": 1, "username": "alice", "email": "alice@example.com", "profile_data": {"team": "core"}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	created := dataField(t, rec)
	if created["persisted"] != true {
		t.Fatalf("create should persist: %v", created)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get returned %d", rec.Code)
	}
	user := dataField(t, rec)["user"].(map[string]any)
	if user["username"] != "alice" {
		t.Fatalf("wrong user: %v", user)
	}
	profile := user["profile_data"].(map[string]any)
	if profile["team"] != "core" {
		t.Fatalf("profile not applied: %v", profile)
	}
}

func TestCreateUserValidationError(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/",
		`{"user_id": 1, "username": "", "email": "x@example.com"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["code"] != "VALIDATION_ERROR" {
		t.Fatalf("wrong error code: %v", envelope)
	}
}

func TestCreateUserRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/",
		`{"user_id": 1, "username": "alice", "email": "a@example.com", "surprise": true}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown fields must be rejected, got %d", rec.Code)
	}
}

func TestGetUserNotFound(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/users/42", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["code"] != "NOT_FOUND" {
		t.Fatalf("wrong error code: %v", envelope)
	}
}

func TestListUsersFilters(t *testing.T) {
	t.Parallel()

	router, data, _ := newTestRouter(t)
	seedUser(t, data, 1, "alice", "alice@example.com")
	inactive, err := domain.NewUser(2, "bob", "bob@example.com")
	if err != nil {
		t.Fatalf("new user failed: %v", err)
	}
	inactive.Deactivate()
	data.SaveUser(inactive)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/users/", "", nil)
	if got := dataField(t, rec)["users"].([]any); len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/?active=true", "", nil)
	if got := dataField(t, rec)["users"].([]any); len(got) != 1 {
		t.Fatalf("expected 1 active user, got %d", len(got))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/?email=bob@example.com", "", nil)
	got := dataField(t, rec)["users"].([]any)
	if len(got) != 1 || got[0].(map[string]any)["username"] != "bob" {
		t.Fatalf("email filter wrong: %v", got)
	}
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	router, data, _ := newTestRouter(t)
	seedUser(t, data, 1, "gone", "gone@example.com")

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/users/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete returned %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/users/1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete should 404, got %d", rec.Code)
	}
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	router, data, _ := newTestRouter(t)
	seedUser(t, data, 1, "owner", "owner@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks/",
		`{"task_id": 101, "title": "Sample Task", "description": "demo", "assigned_to": 1, "priority": "high", "tags": ["demo"]}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/tasks/101/status", `{"status": "completed"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status update returned %d: %s", rec.Code, rec.Body.String())
	}
	task := dataField(t, rec)["task"].(map[string]any)
	if task["status"] != "completed" {
		t.Fatalf("status not applied: %v", task)
	}
	if task["completed_at"] == nil {
		t.Fatalf("completing must stamp completed_at")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/tasks/101/priority", `{"priority": "urgent"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("priority update returned %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/tasks/?status=completed", "", nil)
	if got := dataField(t, rec)["tasks"].([]any); len(got) != 1 {
		t.Fatalf("status filter wrong: %v", got)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/tasks/?status=bogus", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status filter should 400, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/1/tasks", "", nil)
	if got := dataField(t, rec)["tasks"].([]any); len(got) != 1 {
		t.Fatalf("user tasks wrong: %v", got)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/tasks/101", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete task returned %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	router, data, _ := newTestRouter(t)
	seedUser(t, data, 1, "counted", "counted@example.com")

	task, err := domain.NewTask(1, "stat", "stat task", 1, domain.PriorityLow)
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	data.SaveTask(task)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats", "", nil)
	stats := dataField(t, rec)
	if stats["user_count"] != float64(1) || stats["task_count"] != float64(1) {
		t.Fatalf("wrong stats: %v", stats)
	}
}

func TestLoginAndSessionFlow(t *testing.T) {
	t.Parallel()

	router, data, _ := newTestRouter(t)
	seedUser(t, data, 1, "alice", "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/auth/v1/login", `{"user_id": 1, "password": "testpass"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
	login := dataField(t, rec)
	token, _ := login["token"].(string)
	if token == "" {
		t.Fatalf("login must return a token: %v", login)
	}

	// Authenticate stamps LastLogin and login persists it.
	stored, _ := data.GetUser(1)
	if stored.LastLogin == nil {
		t.Fatalf("login must persist last_login")
	}

	auth := map[string]string{"Authorization": "Bearer " + token}

	rec = doJSON(t, router, http.MethodGet, "/auth/v1/session", "", auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("session returned %d", rec.Code)
	}
	session := dataField(t, rec)["session"].(map[string]any)
	if session["user_id"] != float64(1) {
		t.Fatalf("wrong session identity: %v", session)
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/v1/extend", "", auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("extend returned %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/v1/logout", "", auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout returned %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/auth/v1/session", "", auth)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("a logged-out token must be rejected, got %d", rec.Code)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	router, data, _ := newTestRouter(t)
	seedUser(t, data, 1, "victim", "victim@example.com")

	rec := doJSON(t, router, http.MethodPost, "/auth/v1/login", `{"user_id": 99, "password": "testpass"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user must look like bad credentials, got %d", rec.Code)
	}

	for i := 0; i < 3; i++ {
		rec = doJSON(t, router, http.MethodPost, "/auth/v1/login", `{"user_id": 1, "password": "wrong"}`, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d should 401, got %d", i, rec.Code)
		}
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/v1/login", `{"user_id": 1, "password": "testpass"}`, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("locked account should 403, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["code"] != "ACCOUNT_LOCKED" {
		t.Fatalf("wrong error code: %v", envelope)
	}

	rec = doJSON(t, router, http.MethodGet, "/auth/v1/attempts/victim@example.com", "", nil)
	attempts := dataField(t, rec)
	if attempts["attempts"] != float64(3) || attempts["locked_out"] != true {
		t.Fatalf("wrong attempt report: %v", attempts)
	}

	rec = doJSON(t, router, http.MethodDelete, "/auth/v1/attempts/victim@example.com", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset returned %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/v1/login", `{"user_id": 1, "password": "testpass"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login after reset returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserSessionManagement(t *testing.T) {
	t.Parallel()

	router, data, auth := newTestRouter(t)
	alice := seedUser(t, data, 1, "alice", "alice@example.com")
	bob := seedUser(t, data, 2, "bob", "bob@example.com")

	aliceToken := auth.CreateSession(alice)
	auth.CreateSession(alice)
	bobToken := auth.CreateSession(bob)

	header := map[string]string{"Authorization": "Bearer " + bobToken}

	rec := doJSON(t, router, http.MethodGet, "/auth/v1/users/1/sessions", "", header)
	if got := dataField(t, rec)["sessions"].([]any); len(got) != 2 {
		t.Fatalf("expected 2 sessions for alice, got %d", len(got))
	}

	rec = doJSON(t, router, http.MethodDelete, "/auth/v1/users/1/sessions", "", header)
	if got := dataField(t, rec)["invalidated"]; got != float64(2) {
		t.Fatalf("expected 2 invalidated, got %v", got)
	}
	if _, ok := auth.ValidateSession(aliceToken); ok {
		t.Fatalf("alice's sessions must be gone")
	}
	if _, ok := auth.ValidateSession(bobToken); !ok {
		t.Fatalf("bob's session must survive")
	}
}

func TestSessionEndpointsRequireBearer(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	for _, target := range []string{"/auth/v1/session", "/auth/v1/sessions"} {
		rec := doJSON(t, router, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without a token should 401, got %d", target, rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/auth/v1/session", "",
		map[string]string{"Authorization": "Bearer made-up-token"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("a bogus token should 401, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["code"] != "SESSION_INVALID" {
		t.Fatalf("wrong error code: %v", envelope)
	}
}

func TestPathIDValidation(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/users/not-a-number", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id should 400, got %d", rec.Code)
	}
}

func TestCreateTaskWithDueDate(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	body := fmt.Sprintf(`{"task_id": 5, "title": "dated", "description": "has a deadline", "assigned_to": 1, "due_date": %q}`,
		"2026-12-01T09:00:00Z")
	rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks/", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	task := dataField(t, rec)["task"].(map[string]any)
	if task["due_date"] == nil {
		t.Fatalf("due_date missing from snapshot: %v", task)
	}
	if task["priority"] != "medium" {
		t.Fatalf("empty priority should default to medium: %v", task)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/tasks/",
		`{"task_id": 6, "title": "bad date", "description": "x", "assigned_to": 1, "due_date": "tomorrow"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unparseable due_date should 400, got %d", rec.Code)
	}
}
