package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fromService(l, "list_products_error", err)
	}
	l.Debug("list_products_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get", "product_id", c.Param("id"))

	p, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return fromService(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) ByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_category")

	items, err := h.Svc.ByCategory(ctx, c.Param("category"))
	if err != nil {
		return fromService(l, "products_by_category_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	items, err := h.Svc.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return fromService(l, "search_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) Reviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.reviews", "product_id", c.Param("id"))

	reviews, err := h.Svc.Reviews(ctx, c.Param("id"))
	if err != nil {
		return fromService(l, "get_reviews_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *ProductHTTP) SubmitReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.submit_review", "product_id", c.Param("id"))

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "submit_review_error", err)
	}

	p, err := h.Svc.SubmitReview(ctx, middleware.UserID(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return fromService(l, "submit_review_error", err)
	}

	l.Info("submit_review_success")
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Review submitted successfully",
		"product": p,
	})
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_product_error", err)
	}

	p, err := h.Svc.Create(ctx, req.Input())
	if err != nil {
		return fromService(l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update", "product_id", c.Param("id"))

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_product_error", err)
	}

	p, err := h.Svc.Update(ctx, c.Param("id"), req.Input())
	if err != nil {
		return fromService(l, "update_product_error", err)
	}

	l.Info("update_product_success")
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	l := logging.FromContext(ctx).With("handler", "product.delete", "product_id", id)

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fromService(l, "delete_product_error", err)
	}

	l.Info("delete_product_success")
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "Product deleted successfully",
		"productId": id,
	})
}
