package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	CookieSecure bool
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "register_error", err)
	}

	res, err := h.Svc.Register(ctx, req.Name, req.Address(), req.Password, req.Role)
	if err != nil {
		return fromService(l, "register_error", err)
	}

	c.SetCookie(tokens.CreateCookie(tokens.SessionCookie, res.Token, "/", res.Expires, h.CookieSecure))
	l.Info("register_success", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   res.Token,
		"user":    transport.Summarize(res.User),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req.Address(), req.Password)
	if err != nil {
		return fromService(l, "login_error", err)
	}

	c.SetCookie(tokens.CreateCookie(tokens.SessionCookie, res.Token, "/", res.Expires, h.CookieSecure))
	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   res.Token,
		"user":    transport.Summarize(res.User),
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(tokens.DeleteCookie(tokens.SessionCookie, "/", h.CookieSecure))
	return c.JSON(http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHTTP) Verify(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.verify")

	claims, err := h.Svc.Verify(middleware.TokenFromRequest(c))
	if err != nil {
		return fromService(l, "verify_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"valid":  true,
		"userId": claims.UserID,
		"role":   claims.Role,
	})
}
