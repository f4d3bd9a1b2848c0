package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/middleware/metrics"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	OrderHandler   *OrderHTTP
	UserHandler    *UserHTTP
	JWTSecret      []byte
	// Ready reports whether the store answers; nil means always ready.
	Ready   func(ctx context.Context) error
	Metrics *metrics.HTTPMetrics
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Warn("readiness_failed", "error", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Store unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "Backend is running"})
	})

	authn := middleware.NewAuthenticator(d.JWTSecret).RequireAuth
	admin := middleware.RequireRole(middleware.RoleAdmin)

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/verify", d.AuthHandler.Verify)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/search/query", d.ProductHandler.Search)
	products.GET("/category/:category", d.ProductHandler.ByCategory)
	products.GET("/:id", d.ProductHandler.Get)
	products.GET("/:id/reviews", d.ProductHandler.Reviews)
	products.POST("/:id/review", d.ProductHandler.SubmitReview, authn)
	products.POST("", d.ProductHandler.Create, authn, admin)
	products.PUT("/:id", d.ProductHandler.Update, authn, admin)
	products.DELETE("/:id", d.ProductHandler.Delete, authn, admin)

	orders := api.Group("/orders")
	orders.GET("/user", d.OrderHandler.ListMine, authn)
	orders.GET("", d.OrderHandler.ListAll, authn, admin)
	orders.POST("", d.OrderHandler.Create, authn)
	orders.PUT("/:id", d.OrderHandler.UpdateStatus, authn, admin)
	orders.DELETE("/:id", d.OrderHandler.Delete, authn, admin)

	users := api.Group("/users")
	users.GET("/profile", d.UserHandler.Profile, authn)
	users.PUT("/profile", d.UserHandler.UpdateProfile, authn)
	users.PUT("/password", d.UserHandler.ChangePassword, authn)
	users.POST("/address", d.UserHandler.AddAddress, authn)
	users.PUT("/address/:addressId", d.UserHandler.UpdateAddress, authn)
	users.DELETE("/address/:addressId", d.UserHandler.RemoveAddress, authn)
	users.POST("/wishlist/:productId", d.UserHandler.AddToWishlist, authn)
	users.DELETE("/wishlist/:productId", d.UserHandler.RemoveFromWishlist, authn)
	users.GET("", d.UserHandler.List, authn, admin)
	users.DELETE("/:id", d.UserHandler.Delete, authn, admin)
}
