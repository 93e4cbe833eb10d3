package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
	"github.com/AmarTuli/Fred-AI/internal/config"
)

// newTestApp builds a fully routed app with no database and no language
// model. Requests that would touch MariaDB are not exercised here.
func newTestApp(t *testing.T) *App {
	t.Helper()
	a, _ := newTestAppWithRedis(t)
	return a
}

// newTestAppWithRedis also returns the fake Redis so tests can seed sessions.
func newTestAppWithRedis(t *testing.T) (*App, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Env:         "development",
		Port:        5000,
		BaseURL:     "http://localhost:5000",
		CORSOrigins: []string{"http://localhost:5000"},
		Auth: config.AuthConfig{
			SecretKey:  "test-secret-key",
			SessionTTL: time.Hour,
		},
		AI: config.AIConfig{Timeout: time.Second},
	}

	a := New(cfg, nil, rdb)
	require.NoError(t, a.RegisterRoutes(context.Background()))
	return a, mr
}

func serve(a *App, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","bot":"Fred AI"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestBlockedPaths(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/env", "/.env", "/api/env"} {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			rec := serve(a, method, path, nil)
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", method, path)
		}
	}
}

func TestNotFound(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.Contains(t, rec.Body.String(), `"error"`)

	rec = serve(a, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), "Request ID")
}

func TestAnonymousAccess(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/", "/settings"} {
		rec := serve(a, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation), path)
	}

	rec := serve(a, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="csrf_token"`)
}

func TestChatAPI_Anonymous(t *testing.T) {
	a := newTestApp(t)

	rec := serve(a, http.MethodPost, "/api/chat", map[string]string{
		echo.HeaderContentType: echo.MIMEApplicationJSON,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Not authenticated"}`, rec.Body.String())
}

func TestSettingsUpdates_Anonymous(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/update_wifi", "/update_profile"} {
		rec := serve(a, http.MethodPost, path, map[string]string{
			echo.HeaderContentType: echo.MIMEApplicationJSON,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, rec.Body.String(), path)
	}
}

func TestSettingsUpdates_SignedInWithoutCSRFToken(t *testing.T) {
	a, mr := newTestAppWithRedis(t)
	require.NoError(t, mr.Set("session:tok", `{"user_id":1,"username":"alice","display_name":"alice"}`))

	for _, path := range []string{"/update_wifi", "/update_profile"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(&http.Cookie{Name: "fredai_session", Value: "tok"})
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestErrorHandler(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name     string
		err      error
		accept   string
		wantCode int
		wantBody string
		wantLoc  string
	}{
		{"app error json", apperror.NewValidation("bad phone"), echo.MIMEApplicationJSON, http.StatusUnprocessableEntity, `"bad phone"`, ""},
		{"internal hides cause", apperror.NewInternal(errors.New("db down")), echo.MIMEApplicationJSON, http.StatusInternalServerError, "unexpected error", ""},
		{"plain error hides cause", errors.New("boom"), echo.MIMEApplicationJSON, http.StatusInternalServerError, `{"error":"an unexpected error occurred"}`, ""},
		{"browser 401", apperror.NewUnauthenticated("Not authenticated"), "text/html", http.StatusSeeOther, "", "/login"},
		{"browser 409 page", apperror.NewDuplicateUsername(), "text/html", http.StatusConflict, "username already exists", ""},
		{"router error json", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), echo.MIMEApplicationJSON, http.StatusMethodNotAllowed, "Method Not Allowed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/somewhere", nil)
			req.Header.Set(echo.HeaderAccept, tt.accept)
			rec := httptest.NewRecorder()
			c := a.Echo.NewContext(req, rec)

			a.errorHandler(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}
