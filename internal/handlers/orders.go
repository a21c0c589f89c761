package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/cache"
	"github.com/mkravtsov/storefront/internal/logging"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
	"github.com/mkravtsov/storefront/internal/models"
	"github.com/mkravtsov/storefront/internal/mykafka"
	"github.com/mkravtsov/storefront/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
	Cache    *cache.CartCount
}

func (h *OrderHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// Checkout renders the cart snapshot the order form is built from. An empty
// cart sends the caller back to the cart page.
func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.checkout")

	user, _ := authmw.CurrentUser(c)
	cart, err := h.Svc.Checkout(ctx, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return c.Redirect(http.StatusFound, "/cart")
		}
		return httpError(c, l, "checkout_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

// Place converts the cart into an order. Card fields submitted with the
// form are ignored: no payment gateway is wired, and they must never be
// persisted or logged.
func (h *OrderHandler) Place(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.place")

	user, _ := authmw.CurrentUser(c)

	var req struct {
		Address       string `json:"address" form:"address"`
		City          string `json:"city" form:"city"`
		Zipcode       string `json:"zipcode" form:"zipcode"`
		PaymentMethod string `json:"payment_method" form:"payment_method"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	info := models.ShippingInfo{
		Address:       req.Address,
		City:          req.City,
		Zipcode:       req.Zipcode,
		PaymentMethod: req.PaymentMethod,
	}

	order, items, err := h.Svc.Place(ctx, user.ID, info)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return c.Redirect(http.StatusFound, "/cart")
		}
		return httpError(c, l, "place_order_error", err)
	}

	h.Cache.Invalidate(ctx, user.ID)
	h.publish(c, map[string]interface{}{
		"type":    "order_placed",
		"userID":  user.ID,
		"orderID": order.ID,
		"total":   order.TotalAmount,
		"items":   len(items),
	})

	l.Info("order placed", "user_id", user.ID, "order_id", order.ID, "total", order.TotalAmount)
	return c.Redirect(http.StatusFound, fmt.Sprintf("/orders/confirmation/%d", order.ID))
}

func (h *OrderHandler) Confirmation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.confirmation")

	user, _ := authmw.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.Svc.Details(ctx, id, user.ID)
	if err != nil {
		return httpError(c, l, "confirmation_error", err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHandler) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.history")

	user, _ := authmw.CurrentUser(c)
	orders, err := h.Svc.History(ctx, user.ID)
	if err != nil {
		return httpError(c, l, "order_history_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

func (h *OrderHandler) Details(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.details")

	user, _ := authmw.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.Svc.Details(ctx, id, user.ID)
	if err != nil {
		return httpError(c, l, "order_details_error", err)
	}
	return c.JSON(http.StatusOK, detail)
}
