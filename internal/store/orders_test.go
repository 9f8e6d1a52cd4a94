package store

import (
	"fmt"
	"testing"

	"github.com/shalliecode/volydog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(number string) *models.Order {
	return &models.Order{
		OrderNumber:   number,
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		PaymentStatus: models.PaymentPending,
		Status:        models.OrderPending,
		TotalAmount:   1200,
	}
}

func TestCreateOrderWithItems(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{Name: "Biscuit", Price: 1200}
	require.NoError(t, s.CreateProduct(p))

	order := testOrder("VELY20250101120000")
	order.Items = []models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: 1200}}
	require.NoError(t, s.CreateOrder(order))
	require.NotZero(t, order.ID)
	require.NotZero(t, order.Items[0].ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "VELY20250101120000", got.OrderNumber)
	assert.Nil(t, got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, p.ID, got.Items[0].ProductID)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, 1200.0, got.Items[0].Price)
}

func TestCreateOrderLinkedToUser(t *testing.T) {
	s := newTestStore(t)

	user := &models.User{Username: "dana", Email: "dana@example.com", Password: "x"}
	require.NoError(t, s.CreateUser(user))

	order := testOrder("VELY20250101120000")
	order.UserID = &user.ID
	require.NoError(t, s.CreateOrder(order))

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, user.ID, *got.UserID)
}

func TestOrderItemPriceSurvivesProductEdit(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{Name: "Biscuit", Price: 1200}
	require.NoError(t, s.CreateProduct(p))

	order := testOrder("VELY20250101120000")
	order.Items = []models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}}
	require.NoError(t, s.CreateOrder(order))

	// The snapshot must not move when the catalog price changes.
	p.Price = 1500
	require.NoError(t, s.UpdateProduct(p))

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1200.0, got.Items[0].Price)
}

func TestDuplicateOrderNumberDetected(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateOrder(testOrder("VELY20250101120000")))

	err := s.CreateOrder(testOrder("VELY20250101120000"))
	require.Error(t, err)
	assert.True(t, IsOrderNumberConflict(err))
}

func TestIsOrderNumberConflictIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsOrderNumberConflict(nil))
	assert.False(t, IsOrderNumberConflict(fmt.Errorf("some other failure")))
}

func TestGetOrderByIDMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetOrderByID(5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOrderStatuses(t *testing.T) {
	s := newTestStore(t)

	order := testOrder("VELY20250101120000")
	require.NoError(t, s.CreateOrder(order))

	require.NoError(t, s.UpdateOrderStatus(order.ID, models.OrderCompleted))
	require.NoError(t, s.UpdateOrderPaymentStatus(order.ID, models.PaymentPaid))

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, got.Status)
	assert.Equal(t, models.PaymentPaid, got.PaymentStatus)

	assert.ErrorIs(t, s.UpdateOrderStatus(99, models.OrderCompleted), ErrNotFound)
	assert.ErrorIs(t, s.UpdateOrderPaymentStatus(99, models.PaymentPaid), ErrNotFound)
}

func TestRecentOrdersLimitAndOrder(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateOrder(testOrder(fmt.Sprintf("VELY2025010112000%d", i))))
	}

	recent, err := s.GetRecentOrders(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	// Same created_at second, so id DESC breaks the tie: newest insert first.
	assert.Equal(t, "VELY20250101120004", recent[0].OrderNumber)
	assert.Equal(t, "VELY20250101120002", recent[2].OrderNumber)

	all, err := s.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestCountOrders(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateOrder(testOrder("VELY20250101120000")))
	order := testOrder("VELY20250101120001")
	order.Status = models.OrderCompleted
	require.NoError(t, s.CreateOrder(order))

	total, err := s.CountOrders()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	pending, err := s.CountOrdersByStatus(models.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}
