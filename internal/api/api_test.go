package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/miphreal/drf-tweaks/internal/api/middleware"
	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/events"
	"github.com/miphreal/drf-tweaks/internal/platform/logger"
	"github.com/miphreal/drf-tweaks/internal/render"
	"github.com/miphreal/drf-tweaks/internal/service/auth"
	"github.com/miphreal/drf-tweaks/internal/store"
	"github.com/miphreal/drf-tweaks/internal/validation"
	"github.com/miphreal/drf-tweaks/internal/versioning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

type auditRecorder struct {
	mu     sync.Mutex
	events []*events.AuthEvent
}

func (a *auditRecorder) EmitEvent(_ context.Context, e *events.AuthEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return nil
}

func (a *auditRecorder) types() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h, _ := newTestRouterWithAudit(t)
	return h
}

func newTestRouterWithAudit(t *testing.T) (http.Handler, *auditRecorder) {
	t.Helper()
	ctx := context.Background()
	log, _ := logger.SetupTestLogger(t)

	hash, err := auth.HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	users := store.NewMemoryUserStore()
	require.NoError(t, store.Seed(ctx, users, []config.UserConfig{
		{Username: "alice", Email: "alice@example.com", PasswordHash: hash, Active: true, EmailConfirmed: true},
		{Username: "bob", PasswordHash: hash},
	}))

	tokens, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)

	resolver, err := versioning.NewResolver(versioning.Policy{
		Default:    "1.1.0",
		Allowed:    []string{"1.0.0"},
		Deprecated: []string{"0.9.0"},
	})
	require.NoError(t, err)

	gate, err := middleware.NewClientGate(config.ClientsConfig{
		Supported: []config.ClientRule{{Name: "ios", Constraint: ">= 1.0.0"}},
	})
	require.NoError(t, err)

	responder := render.NewResponder(render.New(codes.Default()), resolver)
	audit := &auditRecorder{}

	r := chi.NewRouter()
	r.Use(responder.Recoverer)
	r.NotFound(responder.NotFound)
	r.MethodNotAllowed(responder.MethodNotAllowed)
	r.Route("/api", Routes(Deps{
		Registry:      codes.Default(),
		Validator:     validation.New(),
		Versions:      resolver,
		Responder:     responder,
		Authenticator: auth.NewAuthenticator(users, auth.NewBcryptVerifier(), tokens, log),
		Clients:       gate,
		Audit:         audit,
		Pagination:    config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
	}))
	return r, audit
}

type call struct {
	method string
	path   string
	body   string
	header map[string]string
}

func do(t *testing.T, h http.Handler, c call) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	method := c.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, c.path, strings.NewReader(c.body))
	for k, v := range c.header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func TestTestEndpoint(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name    string
		call    call
		status  int
		version string
		code    float64
	}{
		{name: "default version", call: call{path: "/api/test"}, status: http.StatusOK, version: "1.1.0"},
		{name: "url version", call: call{path: "/api/1.0.0/test"}, status: http.StatusOK, version: "1.0.0"},
		{
			name:    "accept version",
			call:    call{path: "/api/test", header: map[string]string{"Accept": "application/json; version=1.0.0"}},
			status:  http.StatusOK,
			version: "1.0.0",
		},
		{name: "deprecated version", call: call{path: "/api/0.9.0/test"}, status: http.StatusGone, code: 3000},
		{name: "unknown version", call: call{path: "/api/5.0/test"}, status: http.StatusNotFound, code: 1104},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, tt.call)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, body["code"])
			if tt.status != http.StatusOK {
				return
			}
			data := body["data"].(map[string]any)
			assert.Equal(t, tt.version, data["apiVersion"])
			assert.Equal(t, "data_value", data["camelizedDataProperty"])
		})
	}
}

func TestTestEndpointException(t *testing.T) {
	rec, body := do(t, newTestRouter(t), call{path: "/api/test?exception=1"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(1104), body["code"])
	assert.Equal(t, "NotFound", body["status"])
	assert.Equal(t, "test exception", body["msg"])
	assert.Nil(t, body["data"])
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, call{path: "/nowhere"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", body["status"])

	rec, body = do(t, h, call{method: http.MethodDelete, path: "/api/test"})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, `Method "DELETE" not allowed.`, body["msg"])
}

func TestListCodes(t *testing.T) {
	h := newTestRouter(t)
	total := float64(len(codes.Default().Codes()))

	rec, body := do(t, h, call{path: "/api/codes?limit=2&offset=1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rows := body["data"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	assert.Equal(t, float64(1000), first["value"], "ordered by value by default")
	assert.Equal(t, "Error", first["name"])
	assert.Equal(t, "Something went wrong.", first["message"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, total, meta["count"])
	assert.Equal(t, float64(2), meta["limit"])
	assert.Equal(t, float64(1), meta["offset"])
}

func TestListCodesOrderingAndFields(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, call{path: "/api/codes?ordering=-code&fields=code,name&limit=1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, map[string]any{"code": float64(3000), "name": "DeprecationError"}, row)

	rec, body = do(t, h, call{path: "/api/codes?ordering=name&fields=summary&limit=all"})
	require.Equal(t, http.StatusOK, rec.Code)
	rows = body["data"].([]any)
	assert.Len(t, rows, len(codes.Default().Codes()))
	assert.Equal(t, map[string]any{"value": float64(1468), "name": "AlreadyExists"}, rows[0])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(-1), meta["limit"])
}

func TestListCodesInvalidPagination(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, call{path: "/api/codes?limit=lots"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(1400), body["code"])
	sub := body["data"].(map[string]any)
	assert.Equal(t, float64(1453), sub["code"])
	assert.Equal(t, map[string]any{"field": "limit"}, sub["data"])

	rec, body = do(t, h, call{path: "/api/codes?offset=-1&limit=1000"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(2000), body["code"])
	assert.Len(t, body["data"], 2)

	rec, body = do(t, h, call{path: "/api/codes?page=922337203685477581&limit=10"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(1400), body["code"])
	sub = body["data"].(map[string]any)
	assert.Equal(t, float64(1453), sub["code"])
	assert.Equal(t, map[string]any{"field": "page"}, sub["data"])
}

func TestCodeRowNestedData(t *testing.T) {
	c := codes.New(9001, "TooLarge", codes.WithMessage("Too large."), codes.WithData(map[string]any{"limit": 10, "unit": "mb"}))

	assert.Equal(t,
		map[string]any{"name": "TooLarge", "data": map[string]any{"limit": 10}},
		codeRow(c, codeFields.Resolve("name,data.limit")))
	assert.Equal(t,
		map[string]any{"value": 9001, "name": "TooLarge", "message": "Too large.", "data": map[string]any{"limit": 10, "unit": "mb"}},
		codeRow(c, codeFields.Resolve("")))
	assert.Equal(t,
		map[string]any{"value": 9001, "name": "TooLarge"},
		codeRow(c, codeFields.Resolve("summary")))
}

func TestGetCode(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		path   string
		status int
		name   any
	}{
		{"/api/codes/NotFound", http.StatusOK, "NotFound"},
		{"/api/codes/1104", http.StatusOK, "NotFound"},
		{"/api/1.0.0/codes/ValidationError", http.StatusOK, "ValidationError"},
		{"/api/codes/Nope", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, body := do(t, h, call{path: tt.path})
			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				assert.Equal(t, "NotFound", body["status"])
				return
			}
			assert.Equal(t, tt.name, body["data"].(map[string]any)["name"])
		})
	}
}

func login(t *testing.T, h http.Handler, username, password string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)
	return do(t, h, call{method: http.MethodPost, path: "/api/login", body: string(payload)})
}

func TestLoginFlow(t *testing.T) {
	h, audit := newTestRouterWithAudit(t)

	rec, body := do(t, h, call{path: "/api/login"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"isAuthenticated": false}, body["data"])

	rec, body = login(t, h, "Alice", "correct horse")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := body["data"].(map[string]any)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, true, data["isAuthenticated"])
	assert.NotEmpty(t, data["tokenExpiresAt"])
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	bearer := map[string]string{"Authorization": "Bearer " + token}

	rec, body = do(t, h, call{path: "/api/1.0.0/login", header: bearer})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", body["data"].(map[string]any)["email"])

	rec, body = do(t, h, call{method: http.MethodPost, path: "/api/logout", header: bearer})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["data"])

	_, _ = login(t, h, "alice", "wrong")
	assert.Equal(t, []string{events.TypeLoginSucceeded, events.TypeLogout, events.TypeLoginFailed}, audit.types())
	assert.Equal(t, "AuthenticationFailed", audit.events[2].Reason)
}

func TestLoginFailures(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name     string
		username string
		password string
		status   int
		code     float64
		msg      any
	}{
		{"wrong password", "alice", "wrong", http.StatusUnauthorized, 1200, auth.InvalidCredentialsMessage},
		{"unknown user", "mallory", "correct horse", http.StatusUnauthorized, 1200, auth.InvalidCredentialsMessage},
		{"inactive user", "bob", "correct horse", http.StatusForbidden, 1311, "User is not active."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := login(t, h, tt.username, tt.password)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, tt.msg, body["msg"])
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, call{method: http.MethodPost, path: "/api/login", body: `{}`})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(2000), body["code"])
	assert.Equal(t, "Multiple errors happened.", body["msg"])

	subs := body["data"].([]any)
	require.Len(t, subs, 2)
	assert.Equal(t, float64(1451), subs[0].(map[string]any)["code"])
	assert.Equal(t, map[string]any{"field": "password"}, subs[0].(map[string]any)["data"])
	assert.Equal(t, map[string]any{"field": "username"}, subs[1].(map[string]any)["data"])

	rec, body = do(t, h, call{method: http.MethodPost, path: "/api/login", body: `{"username": `})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(1100), body["code"])
}

func TestLogoutWithoutToken(t *testing.T) {
	h, audit := newTestRouterWithAudit(t)

	rec, body := do(t, h, call{path: "/api/logout"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["data"])
	assert.Empty(t, audit.types())
}

func TestMe(t *testing.T) {
	h := newTestRouter(t)

	_, body := login(t, h, "alice", "correct horse")
	token := body["data"].(map[string]any)["token"].(string)
	bearer := map[string]string{"Authorization": "Bearer " + token}

	rec, body := do(t, h, call{path: "/api/me", header: bearer})
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, true, data["emailConfirmed"])

	_, logs := logger.SetupTestLogger(t)
	rec, body = do(t, h, call{path: "/api/1.0.0/me", header: bearer})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, body["data"], "emailConfirmed", "not reported before 1.1")
	logger.AssertLogContains(t, logs, "profile without email_confirmed is deprecated")
	logger.AssertLogContains(t, logs, "DeprecationWarning")

	rec, body = do(t, h, call{path: "/api/me"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, float64(1200), body["code"])
	assert.Equal(t, "Authentication credentials were not provided.", body["msg"])
	assert.Equal(t, domain.BearerChallenge, rec.Header().Get(render.HeaderAuthenticate))

	rec, _ = do(t, h, call{path: "/api/me", header: map[string]string{"Authorization": "Bearer not-a-token"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClientGate(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := do(t, h, call{path: "/api/test", header: map[string]string{"X-Client-Version": "iOS/1.2"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, h, call{path: "/api/test", header: map[string]string{"X-Client-Version": "ios/0.9.1"}})
	assert.Equal(t, middleware.UpgradeStatus, rec.Code)
	assert.Equal(t, float64(1350), body["code"])
	assert.Equal(t, domain.UpgradeMessage, body["msg"])
}
