package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func userReply(c echo.Context, message string, u *models.User) error {
	return c.JSON(http.StatusOK, map[string]any{"message": message, "user": u})
}

func (h *UserHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.profile")

	p, err := h.Svc.Profile(ctx, middleware.UserID(c))
	if err != nil {
		return fromService(l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_profile_error", err)
	}

	u, err := h.Svc.UpdateProfile(ctx, middleware.UserID(c), req.Input())
	if err != nil {
		return fromService(l, "update_profile_error", err)
	}
	return userReply(c, "Profile updated successfully", u)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "change_password_error", err)
	}

	if err := h.Svc.ChangePassword(ctx, middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		return fromService(l, "change_password_error", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *UserHTTP) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.add_address")

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "add_address_error", err)
	}

	u, err := h.Svc.AddAddress(ctx, middleware.UserID(c), req.Input())
	if err != nil {
		return fromService(l, "add_address_error", err)
	}
	return userReply(c, "Address added successfully", u)
}

func (h *UserHTTP) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_address", "address_id", c.Param("addressId"))

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_address_error", err)
	}

	u, err := h.Svc.UpdateAddress(ctx, middleware.UserID(c), c.Param("addressId"), req.Input())
	if err != nil {
		return fromService(l, "update_address_error", err)
	}
	return userReply(c, "Address updated successfully", u)
}

func (h *UserHTTP) RemoveAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.remove_address", "address_id", c.Param("addressId"))

	u, err := h.Svc.RemoveAddress(ctx, middleware.UserID(c), c.Param("addressId"))
	if err != nil {
		return fromService(l, "remove_address_error", err)
	}
	return userReply(c, "Address deleted successfully", u)
}

func (h *UserHTTP) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.add_wishlist", "product_id", c.Param("productId"))

	u, err := h.Svc.AddToWishlist(ctx, middleware.UserID(c), c.Param("productId"))
	if err != nil {
		return fromService(l, "add_wishlist_error", err)
	}
	return userReply(c, "Added to wishlist", u)
}

func (h *UserHTTP) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.remove_wishlist", "product_id", c.Param("productId"))

	u, err := h.Svc.RemoveFromWishlist(ctx, middleware.UserID(c), c.Param("productId"))
	if err != nil {
		return fromService(l, "remove_wishlist_error", err)
	}
	return userReply(c, "Removed from wishlist", u)
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return fromService(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	l := logging.FromContext(ctx).With("handler", "user.delete", "target_user_id", id)

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fromService(l, "delete_user_error", err)
	}

	l.Info("delete_user_success")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "User deleted successfully",
		"userId":  id,
	})
}
