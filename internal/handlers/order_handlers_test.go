package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravtsov/storefront/internal/models"
	"github.com/mkravtsov/storefront/internal/service"
)

var shippingForm = map[string]string{
	"address":        "1 Main Street",
	"city":           "Springfield",
	"zipcode":        "12345",
	"payment_method": "card",
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")
	product := createProduct(t, env, "Phone", 999.99, 50)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), map[string]uint{"quantity": 2}, cookies...)

	rec := env.doJSON(http.MethodGet, "/orders/checkout", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart service.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Lines, 1)
	require.InDelta(t, 1999.98, cart.Total, 0.001)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")

	rec := env.doJSON(http.MethodGet, "/orders/checkout", nil, cookies...)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/cart", rec.Header().Get("Location"))
}

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")
	product := createProduct(t, env, "Phone", 999.99, 50)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), map[string]uint{"quantity": 2}, cookies...)

	rec := env.doJSON(http.MethodPost, "/orders/place", shippingForm, cookies...)
	require.Equal(t, http.StatusFound, rec.Code)

	var order models.Order
	require.NoError(t, env.DB.First(&order).Error)
	require.Equal(t, fmt.Sprintf("/orders/confirmation/%d", order.ID), rec.Header().Get("Location"))
	require.InDelta(t, 1999.98, order.TotalAmount, 0.001)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, "1 Main Street", order.ShippingAddress)

	var items []models.OrderItem
	require.NoError(t, env.DB.Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, product.ID, items[0].ProductID)
	require.EqualValues(t, 2, items[0].Quantity)
	require.InDelta(t, 999.99, items[0].Price, 0.001)

	require.NoError(t, env.DB.First(product, product.ID).Error)
	require.EqualValues(t, 48, product.Stock)

	var cartCount int64
	env.DB.Model(&models.CartItem{}).Count(&cartCount)
	require.EqualValues(t, 0, cartCount)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")
	phone := createProduct(t, env, "Phone", 999.99, 50)
	charger := createProduct(t, env, "Charger", 19.99, 1)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", phone.ID), map[string]uint{"quantity": 2}, cookies...)
	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", charger.ID), map[string]uint{"quantity": 3}, cookies...)

	rec := env.doJSON(http.MethodPost, "/orders/place", shippingForm, cookies...)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, errBody(t, rec), "Charger")

	// Nothing from the attempt sticks, including the phone decrement.
	require.NoError(t, env.DB.First(phone, phone.ID).Error)
	require.EqualValues(t, 50, phone.Stock)
	require.NoError(t, env.DB.First(charger, charger.ID).Error)
	require.EqualValues(t, 1, charger.Stock)

	var orderCount, cartCount int64
	env.DB.Model(&models.Order{}).Count(&orderCount)
	env.DB.Model(&models.CartItem{}).Count(&cartCount)
	require.EqualValues(t, 0, orderCount)
	require.EqualValues(t, 2, cartCount)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")

	rec := env.doJSON(http.MethodPost, "/orders/place", shippingForm, cookies...)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/cart", rec.Header().Get("Location"))
}

func TestPlaceOrderMissingShipping(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")
	product := createProduct(t, env, "Phone", 999.99, 50)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), nil, cookies...)

	rec := env.doJSON(http.MethodPost, "/orders/place", map[string]string{"address": "1 Main Street"}, cookies...)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSequentialPlacementExhaustsStock(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")
	product := createProduct(t, env, "Phone", 999.99, 1)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), map[string]uint{"quantity": 1}, cookies...)
	rec := env.doJSON(http.MethodPost, "/orders/place", shippingForm, cookies...)
	require.Equal(t, http.StatusFound, rec.Code)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), map[string]uint{"quantity": 1}, cookies...)
	rec = env.doJSON(http.MethodPost, "/orders/place", shippingForm, cookies...)
	require.Equal(t, http.StatusConflict, rec.Code)

	var orderCount int64
	env.DB.Model(&models.Order{}).Count(&orderCount)
	require.EqualValues(t, 1, orderCount)

	require.NoError(t, env.DB.First(product, product.ID).Error)
	require.EqualValues(t, 0, product.Stock)
}

func TestOrderConfirmationOwnership(t *testing.T) {
	env := newTestEnv(t)
	aliceCookies := register(t, env, "alice@test.local")
	bobCookies := register(t, env, "bob@test.local")
	product := createProduct(t, env, "Phone", 999.99, 50)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), nil, aliceCookies...)
	rec := env.doJSON(http.MethodPost, "/orders/place", shippingForm, aliceCookies...)
	require.Equal(t, http.StatusFound, rec.Code)

	var order models.Order
	require.NoError(t, env.DB.First(&order).Error)

	path := fmt.Sprintf("/orders/confirmation/%d", order.ID)
	rec = env.doJSON(http.MethodGet, path, nil, aliceCookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail service.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, order.ID, detail.Order.ID)
	require.Len(t, detail.Items, 1)
	require.Equal(t, "Phone", detail.Items[0].ProductName)

	rec = env.doJSON(http.MethodGet, path, nil, bobCookies...)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHistory(t *testing.T) {
	env := newTestEnv(t)
	cookies := register(t, env, "alice@test.local")
	product := createProduct(t, env, "Phone", 999.99, 50)

	env.doJSON(http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), map[string]uint{"quantity": 2}, cookies...)
	env.doJSON(http.MethodPost, "/orders/place", shippingForm, cookies...)

	rec := env.doJSON(http.MethodGet, "/orders", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Orders []models.OrderSummary `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	require.InDelta(t, 1999.98, resp.Orders[0].TotalAmount, 0.001)
	require.EqualValues(t, 1, resp.Orders[0].ItemCount)
}

func TestOrdersRequireLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/auth/login", rec.Header().Get("Location"))
}
