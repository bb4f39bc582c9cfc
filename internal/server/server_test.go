package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/metrics"
	"taskboard/internal/models"
	"taskboard/internal/stats"
	"taskboard/internal/storage/sqlite"
)

var testNow = time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, staticDir string) *Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "taskboard.db"), logger,
		sqlite.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := New(store, logger, metrics.New(), staticDir)
	srv.now = func() time.Time { return testNow }
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "")
	rec := doRequest(t, srv, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateAndListTasks(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doRequest(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Plan sprint",
		"description": "agenda",
		"deadline":    "2026-10-20T09:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Task](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)
	assert.True(t, testNow.Equal(created.CreatedAt))
	require.NotNil(t, created.Deadline)
	assert.True(t, time.Date(2026, time.October, 20, 9, 0, 0, 0, time.UTC).Equal(*created.Deadline))

	rec = doRequest(t, srv, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decode[[]models.Task](t, rec)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
	assert.Equal(t, "Plan sprint", tasks[0].Title)
}

func TestTaskJSONShape(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doRequest(t, srv, http.MethodPost, "/api/tasks", map[string]any{"title": "Bare"})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Contains(t, body, "id")
	assert.Equal(t, "Bare", body["title"])
	assert.Nil(t, body["description"])
	assert.Nil(t, body["deadline"])
	assert.Equal(t, false, body["completed"])
	assert.Equal(t, "2026-10-14T15:00:00Z", body["createdAt"])
}

func TestCreateTaskValidation(t *testing.T) {
	srv := newTestServer(t, "")

	cases := map[string]any{
		"missing title":  map[string]any{"description": "x"},
		"empty title":    map[string]any{"title": ""},
		"blank title":    map[string]any{"title": "   "},
		"bad deadline":   map[string]any{"title": "ok", "deadline": "next tuesday"},
		"malformed body": "{not json",
		"bad createdAt":  map[string]any{"title": "ok", "createdAt": "14/10/2026"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/tasks", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]any](t, rec), "error")
		})
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/tasks", nil)
	assert.Empty(t, decode[[]models.Task](t, rec))
}

func TestToggleTask(t *testing.T) {
	srv := newTestServer(t, "")
	created := decode[models.Task](t, doRequest(t, srv, http.MethodPost, "/api/tasks", map[string]any{"title": "Flip"}))

	rec := doRequest(t, srv, http.MethodPost, "/api/tasks/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.Task](t, rec).Completed)

	rec = doRequest(t, srv, http.MethodPost, "/api/tasks/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[models.Task](t, rec).Completed)

	rec = doRequest(t, srv, http.MethodGet, "/api/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[models.Task](t, rec).Completed)
}

func TestDeleteTask(t *testing.T) {
	srv := newTestServer(t, "")
	created := decode[models.Task](t, doRequest(t, srv, http.MethodPost, "/api/tasks", map[string]any{"title": "Remove"}))

	rec := doRequest(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/tasks/"+created.ID+"/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownTaskIDs(t *testing.T) {
	srv := newTestServer(t, "")

	assert.Equal(t, http.StatusNotFound, doRequest(t, srv, http.MethodGet, "/api/tasks/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, srv, http.MethodPost, "/api/tasks/nope/toggle", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, srv, http.MethodDelete, "/api/tasks/nope", nil).Code)
}

func TestTaskStats(t *testing.T) {
	srv := newTestServer(t, "")

	for _, createdAt := range []string{"2026-10-08T10:00:00Z", "2026-10-08T23:59:59Z", "2026-10-11", ""} {
		body := map[string]any{"title": "t"}
		if createdAt != "" {
			body["createdAt"] = createdAt
		}
		require.Equal(t, http.StatusCreated, doRequest(t, srv, http.MethodPost, "/api/tasks", body).Code)
	}
	tasks := decode[[]models.Task](t, doRequest(t, srv, http.MethodGet, "/api/tasks", nil))
	doRequest(t, srv, http.MethodPost, "/api/tasks/"+tasks[0].ID+"/toggle", nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/tasks/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[stats.Statistics](t, rec)

	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 3, got.Pending)
	assert.Equal(t, "2026-10-08", got.DailyTasks.Dates[0])
	assert.Equal(t, "2026-10-14", got.DailyTasks.Dates[6])
	assert.Equal(t, []int{2, 0, 0, 1, 0, 0, 1}, got.DailyTasks.Counts)
}

func TestTeamMembers(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doRequest(t, srv, http.MethodPost, "/api/team-members", map[string]any{"name": "Lin", "role": "Designer", "email": "lin@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	member := decode[models.TeamMember](t, rec)

	rec = doRequest(t, srv, http.MethodPatch, "/api/team-members/"+member.ID, map[string]any{"role": "Lead Designer"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.TeamMember](t, rec)
	assert.Equal(t, "Lin", updated.Name)
	assert.Equal(t, "Lead Designer", updated.Role)

	members := decode[[]models.TeamMember](t, doRequest(t, srv, http.MethodGet, "/api/team-members", nil))
	require.Len(t, members, 1)

	rec = doRequest(t, srv, http.MethodDelete, "/api/team-members/"+member.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, member.ID, decode[models.TeamMember](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, doRequest(t, srv, http.MethodGet, "/api/team-members/"+member.ID, nil).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, srv, http.MethodPost, "/api/team-members", map[string]any{"role": "x"}).Code)
}

func TestProjects(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doRequest(t, srv, http.MethodPost, "/api/projects", map[string]any{"title": "Website", "members": []string{"m1"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	project := decode[models.Project](t, rec)
	assert.Equal(t, []string{"m1"}, project.Members)

	rec = doRequest(t, srv, http.MethodPatch, "/api/projects/"+project.ID, map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, srv, http.MethodGet, "/api/projects/"+project.ID, nil).Code)
}

func TestDarkMode(t *testing.T) {
	srv := newTestServer(t, "")

	rec := doRequest(t, srv, http.MethodGet, "/api/darkmode", nil)
	assert.JSONEq(t, `{"darkMode":false}`, rec.Body.String())

	rec = doRequest(t, srv, http.MethodPut, "/api/darkmode", map[string]any{"darkMode": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/darkmode", nil)
	assert.JSONEq(t, `{"darkMode":true}`, rec.Body.String())

	rec = doRequest(t, srv, http.MethodPut, "/api/darkmode", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, "")
	doRequest(t, srv, http.MethodPost, "/api/tasks", map[string]any{"title": "counted"})

	rec := doRequest(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `task_mutations_total{op="create"} 1`)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="POST",route="/api/tasks",status="201"} 1`)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>board</html>"), 0o600))
	srv := newTestServer(t, dir)

	rec := doRequest(t, srv, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "board")

	rec = doRequest(t, srv, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"endpoint not found"}`, rec.Body.String())
}

func TestAPIOnlyNotFound(t *testing.T) {
	srv := newTestServer(t, "")
	rec := doRequest(t, srv, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
