package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/cache"
	"github.com/mkravtsov/storefront/internal/logging"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
	"github.com/mkravtsov/storefront/internal/service"
)

type CatalogHandler struct {
	Svc   *service.CatalogService
	Cart  *service.CartService
	Cache *cache.CartCount
}

// cartCount resolves the caller's cart size, 0 for anonymous visitors.
func (h *CatalogHandler) cartCount(c echo.Context) uint {
	user, ok := authmw.CurrentUser(c)
	if !ok {
		return 0
	}
	ctx := c.Request().Context()
	if n, ok := h.Cache.Get(ctx, user.ID); ok {
		return n
	}
	n, err := h.Cart.Count(ctx, user.ID)
	if err != nil {
		logging.FromContext(ctx).Error("cart count error", "error", err)
		return 0
	}
	h.Cache.Set(ctx, user.ID, n)
	return n
}

func (h *CatalogHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.home")

	featured, err := h.Svc.Featured(ctx)
	if err != nil {
		return httpError(c, l, "home_error", err)
	}

	user, _ := authmw.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{
		"featured_products": featured,
		"user":              user,
		"cart_count":        h.cartCount(c),
	})
}

func (h *CatalogHandler) Profile(c echo.Context) error {
	user, _ := authmw.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{
		"user":       user,
		"cart_count": h.cartCount(c),
	})
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list")

	search := c.QueryParam("search")
	var categoryID *uint
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			l.Warn("list_products_error", "status", 400, "category", raw)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
		}
		u := uint(id)
		categoryID = &u
	}

	listing, err := h.Svc.List(ctx, search, categoryID)
	if err != nil {
		return httpError(c, l, "list_products_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products":   listing.Products,
		"categories": listing.Categories,
		"search":     search,
		"cart_count": h.cartCount(c),
	})
}

func (h *CatalogHandler) ProductDetail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.detail")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.Svc.Detail(ctx, id)
	if err != nil {
		return httpError(c, l, "product_detail_error", err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.add_review")

	user, ok := authmw.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Rating  int    `json:"rating" form:"rating"`
		Comment string `json:"comment" form:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_review_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if _, err := h.Svc.AddReview(ctx, user.ID, id, req.Rating, req.Comment); err != nil {
		return httpError(c, l, "add_review_error", err)
	}

	l.Info("review added", "user_id", user.ID, "product_id", id)
	return c.Redirect(http.StatusFound, fmt.Sprintf("/products/%d", id))
}
