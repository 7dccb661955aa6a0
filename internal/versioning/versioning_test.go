package versioning

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(Policy{
		Default:    "1.1.0",
		Allowed:    []string{"1.0.0", "2.0.0"},
		Deprecated: []string{"0.9.0"},
		Pending:    map[string]string{"1.0.0": "2027-01-01"},
	})
	require.NoError(t, err)
	return r
}

func withURLVersion(req *http.Request, v string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(Param, v)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDetermine(t *testing.T) {
	res := newResolver(t)

	tests := []struct {
		name    string
		url     string
		accept  string
		want    string
		wantErr *domain.Error
	}{
		{name: "default", want: "1.1.0"},
		{name: "url wins", url: "2.0.0", accept: "application/json; version=1.0.0", want: "2.0.0"},
		{name: "accept param", accept: "application/vnd.drf+json; version=1.0.0", want: "1.0.0"},
		{name: "accept list", accept: "text/html, application/json; version=2.0.0", want: "2.0.0"},
		{name: "unknown", url: "5.0.0", wantErr: domain.ErrNotFound},
		{name: "deprecated", accept: "application/json; version=0.9.0", wantErr: domain.ErrApiDeprecated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if tt.url != "" {
				req = withURLVersion(req, tt.url)
			}

			got, err := res.Determine(req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineMessages(t *testing.T) {
	res := newResolver(t)

	_, err := res.Determine(withURLVersion(httptest.NewRequest(http.MethodGet, "/api/5.0.0/test", nil), "5.0.0"))
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "5.0.0 version of /api/5.0.0/test API is not found.", de.Detail)

	_, err = res.Determine(withURLVersion(httptest.NewRequest(http.MethodGet, "/api/0.9.0/test", nil), "0.9.0"))
	de, ok = domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "0.9.0 version of /api/0.9.0/test API is DEPRECATED.", de.Detail)
	assert.Equal(t, http.StatusGone, de.Status)
}

func TestPendingWarning(t *testing.T) {
	res := newResolver(t)

	w, ok := res.PendingWarning("1.0.0")
	assert.True(t, ok)
	assert.Equal(t, `299 - "Pending Deprecation: maintained until 2027-01-01"`, w)

	_, ok = res.PendingWarning("1.1.0")
	assert.False(t, ok)
}

func TestNewResolverRejectsBadVersions(t *testing.T) {
	_, err := NewResolver(Policy{})
	assert.Error(t, err)

	_, err = NewResolver(Policy{Default: "1.0", Allowed: []string{"not-a-version"}})
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	assert.True(t, Check("1.1.0", ">= 1.1"))
	assert.False(t, Check("1.0.9", ">= 1.1"))
	assert.True(t, Check("2.0", ">= 1.0, < 3.0"))
	assert.False(t, Check("garbage", ">= 1.0"))
	assert.False(t, Check("1.0", "not a constraint"))
}

func TestContext(t *testing.T) {
	ctx := WithVersion(context.Background(), "2.0.0")
	assert.Equal(t, "2.0.0", FromContext(ctx))
	assert.Empty(t, FromContext(context.Background()))
}

func TestFinallyDeprecatedOn(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, FinallyDeprecatedOn(context.Background(), log, "2026-12-31", "old login flow", now))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "PendingDeprecationWarning", entry["category"])

	buf.Reset()
	require.NoError(t, FinallyDeprecatedOn(context.Background(), log, "2026-01-01", "old login flow", now))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])

	assert.Error(t, FinallyDeprecatedOn(context.Background(), log, "soon", "x", now))
}

func TestPolicyFromConfig(t *testing.T) {
	p := PolicyFromConfig(config.VersioningConfig{
		DefaultVersion:     "1.1.0",
		AllowedVersions:    []string{"1.1.0"},
		DeprecatedVersions: []string{"0.9.0"},
		PendingDeprecation: []config.PendingVersion{{Version: "1.0.0", Until: "2027-01-01"}},
	})

	assert.Equal(t, "1.1.0", p.Default)
	assert.Equal(t, map[string]string{"1.0.0": "2027-01-01"}, p.Pending)

	res, err := NewResolver(p)
	require.NoError(t, err)

	v, err := res.Determine(withURLVersion(httptest.NewRequest(http.MethodGet, "/api/1.0.0/test", nil), "1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v, "pending versions are still served")
}
