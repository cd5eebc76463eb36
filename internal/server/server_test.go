package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"foilctf/internal/config"
	"foilctf/internal/middleware"
	"foilctf/internal/models"
	"foilctf/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	tokens map[string]string
}

func newTestEnv(t *testing.T, names ...string) *testEnv {
	t.Helper()
	return newTestEnvWithFlags(t, "", names...)
}

func newTestEnvWithFlags(t *testing.T, flags string, names ...string) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:      "test-secret-at-least-32-characters-long",
		JWTIssuer:      "foilctf-user",
		JWTAudience:    "foilctf-client",
		Port:           "0",
		AllowedOrigins: "http://localhost:5173",
		Env:            "test",
		FeatureFlags:   flags,
	}
	db := testutil.NewTestDB(t)
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	env := &testEnv{app: srv.App(), db: db, tokens: map[string]string{}}
	for _, u := range testutil.CreateUsers(t, db, names...) {
		token, err := middleware.IssueToken(models.Principal{ID: u.ID, Username: u.Username, Role: u.Role}, time.Hour)
		require.NoError(t, err)
		env.tokens[u.Username] = token
	}
	return env
}

// do sends a request as user (anonymous when empty) and returns the status
// and raw body.
func (e *testEnv) do(t *testing.T, user, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[user])
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, "", http.MethodGet, "/health/live", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, body := env.do(t, "", http.MethodGet, "/health/ready", nil)
	assert.Equal(t, fiber.StatusOK, status)

	ready := decode[map[string]interface{}](t, body)
	assert.Equal(t, "healthy", ready["status"])
	checks := ready["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "unavailable", checks["redis"])

	status, _ = env.do(t, "", http.MethodGet, "/metrics", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, body = env.do(t, "", http.MethodGet, "/api/swagger/doc.json", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "FoilCTF User API")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, "alice")

	for _, path := range []string{"/api/teams", "/api/friends", "/api/teams/requests/sent"} {
		status, body := env.do(t, "", http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
		assert.Equal(t, models.CodeUnauthorized, decode[models.ErrorResponse](t, body).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/teams", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateTeam(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	status, body := env.do(t, "alice", http.MethodPost, "/api/teams", map[string]string{"name": "foil"})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	team := decode[TeamDTO](t, body)
	assert.Equal(t, "foil", team.Name)
	assert.Equal(t, "alice", team.CaptainName)
	assert.Equal(t, 1, team.MembersCount)
	assert.False(t, team.IsLocked)

	status, body = env.do(t, "bob", http.MethodPost, "/api/teams", map[string]string{"name": "foil"})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, models.CodeConflict, decode[models.ErrorResponse](t, body).Code)

	status, body = env.do(t, "alice", http.MethodPost, "/api/teams", map[string]string{"name": "other"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "You are already in a team", decode[models.ErrorResponse](t, body).Error)
}

func TestCreateTeamValidation(t *testing.T) {
	env := newTestEnv(t, "alice")

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "missing name", body: map[string]string{}},
		{name: "too long", body: map[string]string{"name": strings.Repeat("x", 65)}},
		{name: "leading whitespace", body: map[string]string{"name": " foil"}},
		{name: "slash", body: map[string]string{"name": "foil/ctf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, "alice", http.MethodPost, "/api/teams", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status, string(body))
			assert.Equal(t, models.CodeValidation, decode[models.ErrorResponse](t, body).Code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/teams", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.tokens["alice"])
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateTeamWithFreeFormName(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	status, body := env.do(t, "alice", http.MethodPost, "/api/teams", map[string]string{"name": "foil ctf!"})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = env.do(t, "bob", http.MethodGet, "/api/teams/foil%20ctf%21", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "foil ctf!", decode[TeamDTO](t, body).Name)

	status, body = env.do(t, "bob", http.MethodPost, "/api/teams", map[string]string{"name": "requests"})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	status, body = env.do(t, "alice", http.MethodGet, "/api/teams/requests", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "bob", decode[TeamDTO](t, body).CaptainName)
}

func TestJoinRequestFlow(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")

	status, _ := env.do(t, "alice", http.MethodPost, "/api/teams", map[string]string{"name": "foil"})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = env.do(t, "bob", http.MethodPost, "/api/teams/foil/requests", nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := env.do(t, "bob", http.MethodPost, "/api/teams/foil/requests", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Request already sent", decode[models.ErrorResponse](t, body).Error)

	status, body = env.do(t, "bob", http.MethodGet, "/api/teams/requests/sent", nil)
	require.Equal(t, fiber.StatusOK, status)
	sent := decode[[]JoinRequestDTO](t, body)
	require.Len(t, sent, 1)
	assert.Equal(t, "foil", sent[0].TeamName)

	status, _ = env.do(t, "carol", http.MethodGet, "/api/teams/foil/requests", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = env.do(t, "alice", http.MethodGet, "/api/teams/foil/requests", nil)
	require.Equal(t, fiber.StatusOK, status)
	pending := decode[[]JoinRequestDTO](t, body)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].Username)

	status, _ = env.do(t, "alice", http.MethodPost, "/api/teams/foil/requests/bob/accept", nil)
	require.Equal(t, fiber.StatusNoContent, status)

	status, body = env.do(t, "carol", http.MethodGet, "/api/teams/foil/members", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.ElementsMatch(t, []string{"alice", "bob"}, decode[[]string](t, body))

	status, body = env.do(t, "carol", http.MethodGet, "/api/teams/foil", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, decode[TeamDTO](t, body).MembersCount)

	status, _ = env.do(t, "alice", http.MethodPost, "/api/teams/foil/requests/bob/accept", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeclineAndCancelJoinRequest(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")

	status, _ := env.do(t, "alice", http.MethodPost, "/api/teams", map[string]string{"name": "foil"})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = env.do(t, "bob", http.MethodPost, "/api/teams/foil/requests", nil)
	require.Equal(t, fiber.StatusCreated, status)
	status, _ = env.do(t, "carol", http.MethodPost, "/api/teams/foil/requests", nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = env.do(t, "bob", http.MethodPost, "/api/teams/foil/requests/carol/decline", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, "alice", http.MethodPost, "/api/teams/foil/requests/carol/decline", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, "bob", http.MethodDelete, "/api/teams/foil/requests", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = env.do(t, "bob", http.MethodDelete, "/api/teams/foil/requests", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body := env.do(t, "alice", http.MethodGet, "/api/teams/foil/requests", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decode[[]JoinRequestDTO](t, body))
}

func TestTeamCaptainOperations(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")

	status, _ := env.do(t, "alice", http.MethodPost, "/api/teams", map[string]string{"name": "foil"})
	require.Equal(t, fiber.StatusCreated, status)
	for _, u := range []string{"bob", "carol"} {
		status, _ = env.do(t, u, http.MethodPost, "/api/teams/foil/requests", nil)
		require.Equal(t, fiber.StatusCreated, status)
		status, _ = env.do(t, "alice", http.MethodPost, "/api/teams/foil/requests/"+u+"/accept", nil)
		require.Equal(t, fiber.StatusNoContent, status)
	}

	locked := true
	status, body := env.do(t, "alice", http.MethodPatch, "/api/teams", map[string]interface{}{
		"is_locked":   locked,
		"description": "pwn all the things",
	})
	require.Equal(t, fiber.StatusOK, status, string(body))
	team := decode[TeamDTO](t, body)
	assert.True(t, team.IsLocked)
	assert.Equal(t, "pwn all the things", team.Description)

	status, _ = env.do(t, "bob", http.MethodPatch, "/api/teams", map[string]interface{}{"is_locked": false})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = env.do(t, "alice", http.MethodDelete, "/api/teams/foil/members/alice", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "You can not kick yourself!", decode[models.ErrorResponse](t, body).Error)

	status, _ = env.do(t, "alice", http.MethodDelete, "/api/teams/foil/members/carol", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body = env.do(t, "alice", http.MethodDelete, "/api/teams/foil/members/me", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Hand over leadership before leaving", decode[models.ErrorResponse](t, body).Error)

	status, _ = env.do(t, "alice", http.MethodPatch, "/api/teams/foil/captain/bob", nil)
	require.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, "alice", http.MethodDelete, "/api/teams/foil/members/me", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body = env.do(t, "bob", http.MethodGet, "/api/teams/foil", nil)
	require.Equal(t, fiber.StatusOK, status)
	team = decode[TeamDTO](t, body)
	assert.Equal(t, "bob", team.CaptainName)
	assert.Equal(t, 1, team.MembersCount)

	status, _ = env.do(t, "carol", http.MethodDelete, "/api/teams/foil", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, "bob", http.MethodDelete, "/api/teams/foil", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, body = env.do(t, "bob", http.MethodGet, "/api/teams/foil", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, decode[models.ErrorResponse](t, body).Code)
}

func TestLeaveUnknownTeam(t *testing.T) {
	env := newTestEnv(t, "alice")

	status, body := env.do(t, "alice", http.MethodDelete, "/api/teams/ghost/members/me", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Team not found", decode[models.ErrorResponse](t, body).Error)
}

func TestListTeams(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")

	for user, name := range map[string]string{"alice": "foil-red", "bob": "foil-blue", "carol": "pwners"} {
		status, _ := env.do(t, user, http.MethodPost, "/api/teams", map[string]string{"name": name})
		require.Equal(t, fiber.StatusCreated, status)
	}
	status, _ := env.do(t, "bob", http.MethodPatch, "/api/teams", map[string]interface{}{"is_locked": true})
	require.Equal(t, fiber.StatusOK, status)

	status, body := env.do(t, "alice", http.MethodGet, "/api/teams?q=foil", nil)
	require.Equal(t, fiber.StatusOK, status)
	page := decode[Page[TeamDTO]](t, body)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)

	status, body = env.do(t, "alice", http.MethodGet, "/api/teams?q=foil&open=true", nil)
	require.Equal(t, fiber.StatusOK, status)
	page = decode[Page[TeamDTO]](t, body)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "foil-red", page.Items[0].Name)

	status, body = env.do(t, "alice", http.MethodGet, "/api/teams?limit=1&page=2", nil)
	require.Equal(t, fiber.StatusOK, status)
	page = decode[Page[TeamDTO]](t, body)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Page)
}

func TestFriendFlow(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	status, _ := env.do(t, "alice", http.MethodPost, "/api/friends/requests/bob", nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := env.do(t, "bob", http.MethodPost, "/api/friends/requests/alice", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Request already exists", decode[models.ErrorResponse](t, body).Error)

	status, body = env.do(t, "alice", http.MethodGet, "/api/friends/status/bob", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.FriendshipStatusPendingSent, decode[FriendshipStatusDTO](t, body).Status)

	status, body = env.do(t, "bob", http.MethodGet, "/api/friends/requests", nil)
	require.Equal(t, fiber.StatusOK, status)
	requests := decode[Page[FriendRequestDTO]](t, body)
	require.Equal(t, int64(1), requests.Total)
	assert.Equal(t, "alice", requests.Items[0].SenderName)

	status, _ = env.do(t, "bob", http.MethodPost, "/api/friends/requests/alice/accept", nil)
	require.Equal(t, fiber.StatusNoContent, status)

	status, body = env.do(t, "alice", http.MethodGet, "/api/friends", nil)
	require.Equal(t, fiber.StatusOK, status)
	friends := decode[Page[string]](t, body)
	assert.Equal(t, []string{"bob"}, friends.Items)

	status, body = env.do(t, "bob", http.MethodGet, "/api/friends/status/alice", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.FriendshipStatusFriends, decode[FriendshipStatusDTO](t, body).Status)

	status, _ = env.do(t, "bob", http.MethodDelete, "/api/friends/alice", nil)
	require.Equal(t, fiber.StatusNoContent, status)

	status, body = env.do(t, "alice", http.MethodGet, "/api/friends", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decode[Page[string]](t, body).Items)
}

func TestFriendRequestErrors(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	tests := []struct {
		name    string
		user    string
		method  string
		path    string
		status  int
		message string
	}{
		{name: "self request", user: "alice", method: http.MethodPost, path: "/api/friends/requests/alice", status: fiber.StatusForbidden, message: "No self requests allowed"},
		{name: "unknown user", user: "alice", method: http.MethodPost, path: "/api/friends/requests/nobody", status: fiber.StatusForbidden, message: "No such user"},
		{name: "malformed username", user: "alice", method: http.MethodPost, path: "/api/friends/requests/a!", status: fiber.StatusForbidden, message: "No such user"},
		{name: "accept missing request", user: "bob", method: http.MethodPost, path: "/api/friends/requests/alice/accept", status: fiber.StatusForbidden, message: "No such friend request"},
		{name: "reject missing request", user: "bob", method: http.MethodPost, path: "/api/friends/requests/alice/reject", status: fiber.StatusNoContent},
		{name: "cancel missing request", user: "alice", method: http.MethodDelete, path: "/api/friends/requests/bob", status: fiber.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, tt.user, tt.method, tt.path, nil)
			assert.Equal(t, tt.status, status, string(body))
			if tt.message != "" {
				assert.Equal(t, tt.message, decode[models.ErrorResponse](t, body).Error)
			}
		})
	}
}

func TestMyTeam(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	status, body := env.do(t, "alice", http.MethodGet, "/api/me/team", nil)
	assert.Equal(t, fiber.StatusNotFound, status, string(body))
	assert.Equal(t, "You are not in a team", decode[models.ErrorResponse](t, body).Error)

	status, _ = env.do(t, "alice", http.MethodPost, "/api/teams", map[string]string{"name": "me"})
	require.Equal(t, fiber.StatusCreated, status)

	status, body = env.do(t, "alice", http.MethodGet, "/api/me/team", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "me", decode[TeamDTO](t, body).Name)

	status, body = env.do(t, "bob", http.MethodGet, "/api/teams/me", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "alice", decode[TeamDTO](t, body).CaptainName)
}

func TestNotificationsInbox(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	status, body := env.do(t, "alice", http.MethodGet, "/api/me/notifications", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Empty(t, decode[[]NotificationDTO](t, body))

	status, _ = env.do(t, "bob", http.MethodPost, "/api/friends/requests/alice", nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, body = env.do(t, "alice", http.MethodGet, "/api/me/notifications?limit=500", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	inbox := decode[[]NotificationDTO](t, body)
	require.Len(t, inbox, 1)
	assert.Equal(t, "bob has sent a request to you", inbox[0].Message)
	assert.NotZero(t, inbox[0].ID)
	assert.NotEmpty(t, inbox[0].Title)
}

func TestSentFriendRequests(t *testing.T) {
	env := newTestEnv(t, "alice", "bob", "carol")

	for _, target := range []string{"bob", "carol"} {
		status, _ := env.do(t, "alice", http.MethodPost, "/api/friends/requests/"+target, nil)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := env.do(t, "alice", http.MethodGet, "/api/friends/requests/sent", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	sent := decode[[]SentFriendRequestDTO](t, body)
	require.Len(t, sent, 2)
	assert.ElementsMatch(t, []string{"bob", "carol"}, []string{sent[0].ReceiverName, sent[1].ReceiverName})

	status, body = env.do(t, "bob", http.MethodGet, "/api/friends/requests/sent", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Empty(t, decode[[]SentFriendRequestDTO](t, body))
}

func TestFeatureFlags(t *testing.T) {
	env := newTestEnvWithFlags(t, "notify_declined_requests=on,legacy_ui=off", "alice")

	status, body := env.do(t, "alice", http.MethodGet, "/api/me/feature-flags", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))

	flags := decode[FeatureFlagsDTO](t, body)
	assert.Equal(t, map[string]string{"notify_declined_requests": "on", "legacy_ui": "off"}, flags.Raw)
	assert.Equal(t, map[string]bool{"notify_declined_requests": true, "legacy_ui": false}, flags.Evaluated)
	require.NotEmpty(t, flags.Known)
	assert.Equal(t, "notify_declined_requests", flags.Known[0].Name)
}

func TestFriendAcceptLosingRaceReturnsConflict(t *testing.T) {
	env := newTestEnv(t, "alice", "bob")

	status, _ := env.do(t, "alice", http.MethodPost, "/api/friends/requests/bob", nil)
	require.Equal(t, fiber.StatusCreated, status)

	// A competing writer commits the friendship between the pre-check and
	// the insert.
	var once sync.Once
	require.NoError(t, env.db.Callback().Create().Before("gorm:create").Register("test:concurrent_friend", func(db *gorm.DB) {
		if db.Statement.Table != "friends" {
			return
		}
		once.Do(func() {
			_, err := db.Statement.ConnPool.ExecContext(db.Statement.Context,
				"INSERT INTO friends (username_1, username_2, created_at) VALUES (?, ?, ?)", "bob", "alice", time.Now())
			if err != nil {
				_ = db.AddError(err)
			}
		})
	}))
	t.Cleanup(func() { _ = env.db.Callback().Create().Remove("test:concurrent_friend") })

	status, body := env.do(t, "bob", http.MethodPost, "/api/friends/requests/alice/accept", nil)
	assert.Equal(t, fiber.StatusConflict, status, string(body))
	errResp := decode[models.ErrorResponse](t, body)
	assert.Equal(t, models.CodeConflict, errResp.Code)
	assert.Equal(t, "Already friends", errResp.Error)
}
