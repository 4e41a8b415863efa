package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/coffee-store/models"
)

func TestCartFlow(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t, 1, models.RoleUser)

	w := env.do(http.MethodGet, "/api/Cart/GetCartItems", nil, token)
	assertError(t, w, http.StatusNotFound, http.StatusNotFound)

	w = env.do(http.MethodPost, "/api/Cart/AddCoffeeToCart", map[string]any{
		"coffeeId":   env.coffee.ID,
		"capacityId": env.large.ID,
		"quantity":   2,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode[models.CartItem](t, w)
	assert.Equal(t, env.coffee.ID, item.CoffeeID)
	assert.True(t, decimal.RequireFromString("8.00").Equal(item.TotalPrice), item.TotalPrice.String())

	w = env.do(http.MethodGet, "/api/Cart/GetCartItems", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	items := decode[[]models.CartItem](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	w = env.do(http.MethodPut, "/api/Cart/UpdateCartItemQuantity", map[string]any{"cartItemId": item.ID, "quantity": 0}, token)
	assertError(t, w, http.StatusBadRequest, http.StatusBadRequest)

	w = env.do(http.MethodPut, "/api/Cart/UpdateCartItemQuantity", map[string]any{"cartItemId": item.ID, "quantity": 1}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[models.CartItem](t, w).Quantity)

	w = env.do(http.MethodDelete, "/api/Cart/DeleteCartItem?cartItemId=999", nil, token)
	assertError(t, w, http.StatusNotFound, http.StatusNotFound)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/Cart/DeleteCartItem?cartItemId=%d", item.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/api/Cart/GetCartItems", nil, token)
	assertError(t, w, http.StatusNotFound, http.StatusNotFound)
}

func TestAddCoffeeToCartUnknownAddOn(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t, 1, models.RoleUser)

	w := env.do(http.MethodPost, "/api/Cart/AddCoffeeToCart", map[string]any{
		"coffeeId": env.coffee.ID,
		"milkId":   77,
		"quantity": 1,
	}, token)
	assertError(t, w, http.StatusNotFound, http.StatusNotFound)
}

func TestCheckoutCart(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t, 1, models.RoleUser)

	w := env.do(http.MethodPost, "/api/Cart/CheckoutCart", nil, token)
	assertError(t, w, http.StatusUnauthorized, http.StatusNotFound)

	var orders int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders, "an empty checkout creates no order")

	w = env.do(http.MethodPost, "/api/Cart/AddCoffeeToCart", map[string]any{"coffeeId": env.coffee.ID, "quantity": 3}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/api/Cart/CheckoutCart", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	order := decode[models.Order](t, w)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, decimal.RequireFromString("9.00").Equal(order.TotalAmount), order.TotalAmount.String())
	require.Len(t, order.OrderDetails, 1)
	assert.Equal(t, "Flat White", order.OrderDetails[0].CoffeeName)

	w = env.do(http.MethodGet, "/api/Cart/GetCartItems", nil, token)
	assertError(t, w, http.StatusNotFound, http.StatusNotFound)
}

func TestCartRequiresCustomer(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/api/Cart/GetCartItems", nil, "")
	assertError(t, w, http.StatusUnauthorized, http.StatusUnauthorized)

	w = env.do(http.MethodGet, "/api/Cart/GetCartItems", nil, "not-a-token")
	assertError(t, w, http.StatusUnauthorized, http.StatusUnauthorized)

	w = env.do(http.MethodPost, "/api/Cart/CheckoutCart", nil, env.token(t, 1, models.RoleBarista))
	assertError(t, w, http.StatusForbidden, http.StatusForbidden)
}
