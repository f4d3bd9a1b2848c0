package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Authenticator struct {
	Secret []byte
}

func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{Secret: secret}
}

// RequireAuth accepts the session cookie or an Authorization bearer header.
func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := TokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, a.Secret)
		if err != nil {
			logging.FromContext(c.Request().Context()).Debug("token_rejected", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)

		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("user_id", claims.UserID)
		c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))

		return next(c)
	}
}

// RequireRole must run after RequireAuth. Admin gets no implicit grants.
func RequireRole(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
			}
			if !slices.Contains(required, role) {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied: insufficient permissions")
			}
			return next(c)
		}
	}
}

func TokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(tokens.SessionCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func UserID(c echo.Context) string {
	v, _ := c.Get(CtxUserID).(string)
	return v
}

func Role(c echo.Context) string {
	v, _ := c.Get(CtxRole).(string)
	return v
}
