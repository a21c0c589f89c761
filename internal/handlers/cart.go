package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/cache"
	"github.com/mkravtsov/storefront/internal/logging"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
	"github.com/mkravtsov/storefront/internal/mykafka"
	"github.com/mkravtsov/storefront/internal/service"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
	Cache    *cache.CartCount
}

func (h *CartHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	user, _ := authmw.CurrentUser(c)
	cart, err := h.Svc.GetCart(ctx, user.ID)
	if err != nil {
		return httpError(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	user, _ := authmw.CurrentUser(c)
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}

	var req struct {
		Quantity uint `json:"quantity" form:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	item, err := h.Svc.AddToCart(ctx, user.ID, productID, req.Quantity)
	if err != nil {
		return httpError(c, l, "add_to_cart_error", err)
	}

	h.Cache.Invalidate(ctx, user.ID)
	h.publish(c, map[string]interface{}{
		"type":      "cart_item_added",
		"userID":    user.ID,
		"productID": productID,
		"quantity":  item.Quantity,
	})

	l.Info("item added to cart", "user_id", user.ID, "product_id", productID)
	return c.Redirect(http.StatusFound, "/cart")
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	user, _ := authmw.CurrentUser(c)
	lineID, err := parseID(c, "cartId")
	if err != nil {
		return err
	}

	var req struct {
		Quantity int `json:"quantity" form:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	deleted, err := h.Svc.UpdateQuantity(ctx, user.ID, lineID, req.Quantity)
	if err != nil {
		return httpError(c, l, "update_cart_error", err)
	}

	h.Cache.Invalidate(ctx, user.ID)
	h.publish(c, map[string]interface{}{
		"type":    "cart_item_updated",
		"userID":  user.ID,
		"lineID":  lineID,
		"deleted": deleted,
	})
	return c.Redirect(http.StatusFound, "/cart")
}

// Remove is idempotent: removing a line that is already gone succeeds.
func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	user, _ := authmw.CurrentUser(c)
	lineID, err := parseID(c, "cartId")
	if err != nil {
		return err
	}

	if err := h.Svc.Remove(ctx, user.ID, lineID); err != nil {
		return httpError(c, l, "remove_cart_error", err)
	}

	h.Cache.Invalidate(ctx, user.ID)
	h.publish(c, map[string]interface{}{
		"type":   "cart_item_removed",
		"userID": user.ID,
		"lineID": lineID,
	})
	return c.Redirect(http.StatusFound, "/cart")
}

// Count answers 0 for anonymous callers instead of failing.
func (h *CartHandler) Count(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.count")

	user, ok := authmw.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"count": 0})
	}

	if n, ok := h.Cache.Get(ctx, user.ID); ok {
		return c.JSON(http.StatusOK, echo.Map{"count": n})
	}

	count, err := h.Svc.Count(ctx, user.ID)
	if err != nil {
		return httpError(c, l, "cart_count_error", err)
	}
	h.Cache.Set(ctx, user.ID, count)
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
