package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/pkg/tokens"
)

var secret = []byte("test-jwt-secret")

func newEcho() *echo.Echo {
	e := echo.New()
	a := NewAuthenticator(secret)

	ok := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": UserID(c), "role": Role(c)})
	}
	e.GET("/private", ok, a.RequireAuth)
	e.GET("/admin", ok, a.RequireAuth, RequireRole(RoleAdmin))
	e.GET("/members", ok, a.RequireAuth, RequireRole(RoleAdmin, RoleUser))
	e.GET("/no-auth-admin", ok, RequireRole(RoleAdmin))
	return e
}

func token(t *testing.T, role string) string {
	t.Helper()
	tk, _, err := tokens.NewAccessToken("u-1", role, secret, time.Hour)
	require.NoError(t, err)
	return tk
}

func do(e *echo.Echo, path string, mutate func(r *http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	e := newEcho()
	userToken := token(t, RoleUser)

	tests := []struct {
		name   string
		mutate func(r *http.Request)
		want   int
	}{
		{name: "no token", want: http.StatusUnauthorized},
		{
			name:   "bearer header",
			mutate: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userToken) },
			want:   http.StatusOK,
		},
		{
			name:   "lower-case bearer",
			mutate: func(r *http.Request) { r.Header.Set("Authorization", "bearer "+userToken) },
			want:   http.StatusOK,
		},
		{
			name:   "cookie",
			mutate: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: tokens.SessionCookie, Value: userToken}) },
			want:   http.StatusOK,
		},
		{
			name:   "invalid token",
			mutate: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			want:   http.StatusUnauthorized,
		},
		{
			name:   "basic scheme ignored",
			mutate: func(r *http.Request) { r.Header.Set("Authorization", "Basic "+userToken) },
			want:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, "/private", tt.mutate)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := newEcho()
	bearer := func(tk string) func(r *http.Request) {
		return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tk) }
	}

	rec := do(e, "/admin", bearer(token(t, RoleUser)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied")

	rec = do(e, "/admin", bearer(token(t, RoleAdmin)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, "/members", bearer(token(t, RoleUser)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, "/no-auth-admin", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
