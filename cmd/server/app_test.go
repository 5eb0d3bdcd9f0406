package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/database"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			AllowedOrigins:         []string{"http://localhost:3000"},
			RequestTimeoutSeconds:  5,
			ShutdownTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{Driver: database.DriverSQLite, URL: "unused"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-bytes-long",
			TokenLifetimeMinutes: 60,
			BCryptCost:           4,
		},
	}
}

// newTestServer wires the full application over a migrated SQLite database.
func newTestServer(t *testing.T) (*httptest.Server, *logger.TestLogBuffer) {
	t.Helper()

	log, buf := logger.GetTestLogger(t)
	app, err := newApplication(testConfig(), log, testdb.OpenSQLite(t))
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv, buf
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func signUpAndIn(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()

	creds := `{"username":"` + username + `","password":"` + password + `"}`
	resp := do(t, srv, http.MethodPost, "/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/auth/signin", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[api.SignInResponse](t, resp).AccessToken
	require.NotEmpty(t, token)
	return token
}

func TestEndToEndTaskFlow(t *testing.T) {
	t.Parallel()

	srv, logs := newTestServer(t)
	token := signUpAndIn(t, srv, "alice", "pw123")

	resp := do(t, srv, http.MethodPost, "/tasks", token, `{"title":"Test","description":"desc"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.TaskResponse](t, resp)
	assert.Equal(t, "OPEN", created.Status)

	resp = do(t, srv, http.MethodGet, "/tasks", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := decode[[]api.TaskResponse](t, resp)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Test", tasks[0].Title)
	assert.Equal(t, "desc", tasks[0].Description)
	assert.Equal(t, "OPEN", tasks[0].Status)

	resp = do(t, srv, http.MethodPatch, "/tasks/"+created.ID+"/status", token, `{"status":"DONE"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/tasks/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DONE", decode[api.TaskResponse](t, resp).Status)

	resp = do(t, srv, http.MethodGet, "/tasks?status=OPEN", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]api.TaskResponse](t, resp))

	resp = do(t, srv, http.MethodDelete, "/tasks/"+created.ID, token, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/tasks/"+created.ID, token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Contains(t, logs.String(), `"event_type":"task.created"`)
	assert.Contains(t, logs.String(), `"event_type":"task.deleted"`)
	assert.NotContains(t, logs.String(), "pw123")
}

func TestEndToEndOwnershipIsolation(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	alice := signUpAndIn(t, srv, "alice", "pw123")
	bob := signUpAndIn(t, srv, "bob", "hunter2")

	resp := do(t, srv, http.MethodPost, "/tasks", alice, `{"title":"Secret"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	aliceTask := decode[api.TaskResponse](t, resp)

	resp = do(t, srv, http.MethodGet, "/tasks/"+aliceTask.ID, bob, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodPatch, "/tasks/"+aliceTask.ID+"/status", bob, `{"status":"DONE"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/tasks/"+aliceTask.ID, bob, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/tasks", bob, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]api.TaskResponse](t, resp))

	resp = do(t, srv, http.MethodGet, "/tasks/"+aliceTask.ID, alice, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OPEN", decode[api.TaskResponse](t, resp).Status)
}

func TestEndToEndAuthFailures(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	signUpAndIn(t, srv, "alice", "pw123")

	resp := do(t, srv, http.MethodPost, "/auth/signup", "", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/auth/signin", "", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/auth/signin", "", `{"username":"nobody","password":"pw123"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/tasks", "not.a.jwt", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestHealthAndCORS(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	preflight, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = preflight.Body.Close() }()

	assert.Equal(t, "http://localhost:3000", preflight.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", preflight.Header.Get("Access-Control-Allow-Credentials"))
}

func TestNewStoresRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, _, err := newStores("mysql", nil, nil)
	assert.ErrorIs(t, err, database.ErrUnsupportedDriver)
}
