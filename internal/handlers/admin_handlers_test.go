package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravtsov/storefront/internal/models"
)

func TestAdminRequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	userCookies := register(t, env, "alice@test.local")

	rec := env.doJSON(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(http.MethodGet, "/admin", nil, userCookies...)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(http.MethodPost, "/admin/products", map[string]string{"name": "Sneaky"}, userCookies...)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	env.DB.Model(&models.Product{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestAdminListProducts(t *testing.T) {
	env := newTestEnv(t)
	cookies := loginAdmin(t, env)
	createProduct(t, env, "Widget", 9.99, 10)
	createProduct(t, env, "Gadget", 24.50, 5)

	rec := env.doJSON(http.MethodGet, "/admin", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []models.Product   `json:"products"`
		User     models.SessionUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 2)
	require.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestAdminCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	cookies := loginAdmin(t, env)

	category := models.Category{Name: "Electronics"}
	require.NoError(t, env.DB.Create(&category).Error)

	rec := env.doJSON(http.MethodPost, "/admin/products", map[string]interface{}{
		"name":        "Phone",
		"description": "A phone",
		"price":       999.99,
		"category_id": category.ID,
		"stock":       50,
	}, cookies...)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "Phone", created.Name)
	require.NotNil(t, created.CategoryID)
	require.Equal(t, category.ID, *created.CategoryID)
	require.EqualValues(t, 50, created.Stock)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, created.ID).Error)
	require.InDelta(t, 999.99, stored.Price, 0.001)
}

func TestAdminCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	cookies := loginAdmin(t, env)

	rec := env.doJSON(http.MethodPost, "/admin/products", map[string]interface{}{
		"description": "nameless",
		"price":       1.0,
	}, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(http.MethodPost, "/admin/products", map[string]interface{}{
		"name":  "Negative",
		"price": -1.0,
	}, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	cookies := loginAdmin(t, env)
	product := createProduct(t, env, "Widget", 9.99, 10)

	rec := env.doJSON(http.MethodPatch, fmt.Sprintf("/admin/products/%d", product.ID), map[string]interface{}{
		"name":        "Widget Pro",
		"description": "Updated",
		"price":       14.99,
		"stock":       7,
	}, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.Product
	require.NoError(t, env.DB.First(&stored, product.ID).Error)
	require.Equal(t, "Widget Pro", stored.Name)
	require.InDelta(t, 14.99, stored.Price, 0.001)
	require.EqualValues(t, 7, stored.Stock)
}

func TestAdminUpdateMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	cookies := loginAdmin(t, env)

	rec := env.doJSON(http.MethodPatch, "/admin/products/999", map[string]interface{}{
		"name":  "Ghost",
		"price": 1.0,
	}, cookies...)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	cookies := loginAdmin(t, env)
	product := createProduct(t, env, "Widget", 9.99, 10)

	rec := env.doJSON(http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ID), nil, cookies...)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	env.DB.Model(&models.Product{}).Count(&count)
	require.EqualValues(t, 0, count)

	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/admin/products/%d", product.ID), nil, cookies...)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminInvalidID(t *testing.T) {
	env := newTestEnv(t)
	cookies := loginAdmin(t, env)

	rec := env.doJSON(http.MethodGet, "/admin/products/abc", nil, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
