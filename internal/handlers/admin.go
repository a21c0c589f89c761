package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/storefront/internal/logging"
	authmw "github.com/mkravtsov/storefront/internal/middleware/auth"
	"github.com/mkravtsov/storefront/internal/mykafka"
	"github.com/mkravtsov/storefront/internal/service"
)

type AdminHandler struct {
	Svc      *service.AdminService
	Producer *mykafka.Producer
}

func (h *AdminHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_products")

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return httpError(c, l, "admin_list_error", err)
	}

	user, _ := authmw.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"products": products, "user": user})
}

func (h *AdminHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_categories")

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return httpError(c, l, "admin_categories_error", err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *AdminHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return httpError(c, l, "admin_get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		l.Warn("admin_create_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	product, err := h.Svc.CreateProduct(ctx, in)
	if err != nil {
		return httpError(c, l, "admin_create_error", err)
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product created", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_product")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		l.Warn("admin_update_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	product, err := h.Svc.UpdateProduct(ctx, id, in)
	if err != nil {
		return httpError(c, l, "admin_update_error", err)
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product updated", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return httpError(c, l, "admin_delete_error", err)
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("product deleted", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
