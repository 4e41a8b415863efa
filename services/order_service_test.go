package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/models"
)

func checkout(t *testing.T, f *fixture, userID uint, lines int) *models.Order {
	t.Helper()
	ctx := testContext(t)
	selections := []models.AddOnSelection{
		{},
		{CapacityID: ptr(f.large.ID)},
		{NonDairyAlternativeID: ptr(f.oat.ID)},
	}
	for i := 0; i < lines; i++ {
		_, err := f.carts.AddItemToCart(ctx, userID, AddItemRequest{CoffeeID: f.coffee.ID, Selection: selections[i], Quantity: 1})
		require.NoError(t, err)
	}
	order, err := f.carts.CheckoutCart(ctx, userID)
	require.NoError(t, err)
	return order
}

func TestViewOrders(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)

	_, err := f.orders.ViewAllOrders(ctx)
	assert.ErrorIs(t, err, apperrors.ErrEmptyList)

	mine := checkout(t, f, 1, 1)
	checkout(t, f, 2, 2)

	all, err := f.orders.ViewAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.orders.ViewAllMyOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	_, err = f.orders.UpdateOrderDetail(ctx, mine.OrderDetails[0].ID, models.StatusCompleted, 10)
	require.NoError(t, err)

	active, err := f.orders.ViewAllActiveOrders(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.NotEqual(t, mine.ID, active[0].ID)

	_, err = f.orders.ViewMyActiveOrders(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrEmptyList)

	history, err := f.orders.ViewAllMyOrders(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, history, 1, "completed orders stay in the history")
}

func TestUpdateOrderDetailAggregatesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	order := checkout(t, f, 1, 2)
	first, second := order.OrderDetails[0].ID, order.OrderDetails[1].ID

	steps := []struct {
		detail uint
		status string
		order  string
	}{
		{first, models.StatusInProgress, models.StatusInProgress},
		{first, models.StatusCompleted, models.StatusInProgress},
		{second, models.StatusCancelled, models.StatusCompleted},
		{first, models.StatusCancelled, models.StatusCancelled},
		{second, models.StatusPending, models.StatusInProgress},
	}
	for _, s := range steps {
		detail, err := f.orders.UpdateOrderDetail(ctx, s.detail, s.status, 10)
		require.NoError(t, err)
		require.NotNil(t, detail.OrderDetailStatus)
		assert.Equal(t, s.status, detail.OrderDetailStatus.Status)
		require.NotNil(t, detail.OrderDetailStatus.UpdatedByID)
		assert.Equal(t, uint(10), *detail.OrderDetailStatus.UpdatedByID)

		orders, err := f.orders.ViewAllMyOrders(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, s.order, orders[0].Status, "after setting detail %d to %s", s.detail, s.status)
	}
}

func TestUpdateOrderDetailRejects(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	order := checkout(t, f, 1, 1)

	_, err := f.orders.UpdateOrderDetail(ctx, order.OrderDetails[0].ID, "Brewing", 10)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.orders.UpdateOrderDetail(ctx, 999, models.StatusCompleted, 10)
	assert.ErrorIs(t, err, apperrors.ErrElementNotFound)

	orders, err := f.orders.ViewAllMyOrders(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.Equal(t, models.StatusPending, orders[0].OrderDetails[0].OrderDetailStatus.Status)
}
